package cms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"virtualconf/internal/domain"
	"virtualconf/internal/schedule"
)

// timestamp accepts both {"__type":"Date","iso":...} and a plain string.
type timestamp struct {
	Raw string
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Raw = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &t.Raw)
	}
	var d struct {
		Type string `json:"__type"`
		ISO  string `json:"iso"`
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	t.Raw = d.ISO
	return nil
}

func (t timestamp) parse(zone *time.Location) (time.Time, error) {
	if t.Raw == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	return schedule.ParseTimestamp(t.Raw, zone)
}

type file struct {
	URL string `json:"url"`
}

// media is an included asset record holding a file.
type media struct {
	File *file `json:"file"`
}

func (m *media) url() string {
	if m == nil || m.File == nil {
		return ""
	}
	return m.File.URL
}

type wireParticipant struct {
	ObjectID  string  `json:"objectId"`
	Status    string  `json:"t__status"`
	Email     string  `json:"Email"`
	Points    float64 `json:"Points"`
	Ticket    string  `json:"Ticket"`
	FirstName string  `json:"First_Name"`
	Surname   string  `json:"Surname"`
	Name      string  `json:"Name"`
	Location  string  `json:"Location"`
	Admin     bool    `json:"Admin"`
}

// displayName is "First_Name Surname", the form the claimPoints function
// matches on. Records without either part fall back to Name.
func (w wireParticipant) displayName() string {
	if w.FirstName == "" && w.Surname == "" {
		return w.Name
	}
	return w.FirstName + " " + w.Surname
}

func (w wireParticipant) toDomain() domain.Participant {
	return domain.Participant{
		ID:       w.ObjectID,
		Email:    w.Email,
		Points:   int(math.Round(w.Points)),
		Ticket:   w.Ticket,
		Name:     w.displayName(),
		Location: w.Location,
		Admin:    w.Admin,
	}
}

type wireCategory struct {
	Status          string `json:"t__status"`
	Name            string `json:"Name"`
	Icon            string `json:"Icon"`
	StrokeColor     string `json:"Stroke_Colour"`
	BackgroundColor string `json:"Background_Colour"`
}

func (w wireCategory) toDomain() domain.Category {
	return domain.Category{
		Name:            w.Name,
		Icon:            w.Icon,
		StrokeColor:     w.StrokeColor,
		BackgroundColor: w.BackgroundColor,
	}
}

type wireSpeakerTalk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type wireSpeaker struct {
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Bio         string            `json:"bio"`
	Company     string            `json:"company"`
	Twitter     string            `json:"twitter"`
	GitHub      string            `json:"github"`
	Image       *media            `json:"image"`
	ImageSquare *media            `json:"image_square"`
	Talk        []wireSpeakerTalk `json:"talk"`
}

func (w wireSpeaker) toDomain() domain.Speaker {
	s := domain.Speaker{
		Name:           w.Name,
		Slug:           w.Slug,
		Title:          w.Title,
		Bio:            w.Bio,
		Company:        w.Company,
		Twitter:        w.Twitter,
		GitHub:         w.GitHub,
		ImageURL:       w.Image.url(),
		ImageSquareURL: w.ImageSquare.url(),
	}
	if len(w.Talk) > 0 {
		s.Talk = &domain.SpeakerTalk{Title: w.Talk[0].Title, Description: w.Talk[0].Description}
	}
	return s
}

type wireTalk struct {
	ObjectID     string            `json:"objectId"`
	Status       string            `json:"t__status"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Start        timestamp         `json:"start"`
	End          timestamp         `json:"end"`
	Speakers     []wireSpeaker     `json:"speaker_collection"`
	Participants []wireParticipant `json:"participants"`
	Categories   []wireCategory    `json:"category"`
	MaxCapacity  *domain.Capacity  `json:"max_capacity"`
	SelfAssign   bool              `json:"self_assign"`
	MuralLink    string            `json:"mural_link"`
	ZoomLink     string            `json:"zoom_link"`
	MuralEmbed   string            `json:"mural_embed"`
	MiboLink     string            `json:"mibo_link"`
	VideoURL     string            `json:"videoUrl_left"`
}

// toDomain validates the record. Slug, start and end are required. Nested
// participants and categories that are not published are dropped.
func (w wireTalk) toDomain(zone *time.Location) (*domain.Talk, error) {
	if w.Slug == "" {
		return nil, fmt.Errorf("talk %q: missing slug", w.ObjectID)
	}
	start, err := w.Start.parse(zone)
	if err != nil {
		return nil, fmt.Errorf("talk %q: start: %w", w.Slug, err)
	}
	end, err := w.End.parse(zone)
	if err != nil {
		return nil, fmt.Errorf("talk %q: end: %w", w.Slug, err)
	}

	capacity := domain.Unlimited()
	if w.MaxCapacity != nil {
		capacity = *w.MaxCapacity
	}

	t := &domain.Talk{
		ID:             w.ObjectID,
		Title:          w.Title,
		Slug:           w.Slug,
		Description:    w.Description,
		Start:          start,
		End:            end,
		Speakers:       make([]domain.Speaker, 0, len(w.Speakers)),
		Participants:   make([]domain.Participant, 0, len(w.Participants)),
		MaxCapacity:    capacity,
		SelfAssign:     w.SelfAssign,
		ConferenceLink: w.ZoomLink,
		BoardLink:      w.MuralLink,
		BoardEmbedURL:  w.MuralEmbed,
		RoomLink:       w.MiboLink,
		VideoURL:       w.VideoURL,
	}
	for _, s := range w.Speakers {
		t.Speakers = append(t.Speakers, s.toDomain())
	}
	for _, p := range w.Participants {
		if p.Status != publishedStatus {
			continue
		}
		t.Participants = append(t.Participants, p.toDomain())
	}
	for _, c := range w.Categories {
		if c.Status != "" && c.Status != publishedStatus {
			continue
		}
		t.Categories = append(t.Categories, c.toDomain())
	}
	return t, nil
}

type wireExercise struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

type wireStage struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Live        bool           `json:"live"`
	Schedule    []wireTalk     `json:"schedule_collection"`
	Warmup      []wireExercise `json:"warmup_exercises"`
}

type wireTeam struct {
	Name    string            `json:"Name"`
	Members []wireParticipant `json:"Members"`
}

type wireChallenge struct {
	Name        string  `json:"Name"`
	Points      float64 `json:"Points"`
	Type        string  `json:"Type"`
	Description string  `json:"Description"`
	Code        string  `json:"Code"`
	TypeformURL string  `json:"Typeform_URL"`
}

type wireProduct struct {
	Name        string  `json:"Name"`
	Price       float64 `json:"Price"`
	Description string  `json:"Description"`
	Image       *media  `json:"Image"`
	Asset       *media  `json:"Asset_Download"`
}

type wireNavigationItem struct {
	Route  string `json:"Route"`
	Hidden bool   `json:"Hidden"`
	Name   string `json:"Name"`
}

type wireSetting struct {
	MetaDescription    string               `json:"Meta_Description"`
	TwitterUsername    string               `json:"Twitter_Username"`
	BrandName          string               `json:"Brand_Name"`
	SiteName           string               `json:"Site_Name"`
	SiteDescription    string               `json:"Site_Description"`
	CopyrightText      string               `json:"Copyright_Text"`
	SampleTicketNumber float64              `json:"Sample_Ticket_Number"`
	LegalURL           string               `json:"Legal_URL"`
	GithubRepo         string               `json:"Github_Repo"`
	NavigationItems    []wireNavigationItem `json:"Navigation_Items"`
	SiteNameMultiline  []string             `json:"Site_Name_Multi_Line"`
	SiteURL            string               `json:"Site_URL"`
	TicketThemes       []string             `json:"Ticket_Themes"`
	CodeOfConduct      string               `json:"Code_of_Conduct_Text"`
	DateText           string               `json:"Date_Text"`
	FullDate           string               `json:"Full_Date"`
}

func (w wireSetting) toDomain() *domain.SiteSetting {
	s := &domain.SiteSetting{
		MetaDescription:    w.MetaDescription,
		TwitterUsername:    w.TwitterUsername,
		BrandName:          w.BrandName,
		SiteName:           w.SiteName,
		SiteDescription:    w.SiteDescription,
		CopyrightText:      w.CopyrightText,
		SampleTicketNumber: int(w.SampleTicketNumber),
		LegalURL:           w.LegalURL,
		GithubRepo:         w.GithubRepo,
		NavigationItems:    make([]domain.NavigationItem, 0, len(w.NavigationItems)),
		SiteNameMultiline:  w.SiteNameMultiline,
		SiteURL:            w.SiteURL,
		TicketThemes:       w.TicketThemes,
		CodeOfConduct:      w.CodeOfConduct,
		DateText:           w.DateText,
		FullDate:           w.FullDate,
	}
	for _, n := range w.NavigationItems {
		s.NavigationItems = append(s.NavigationItems, domain.NavigationItem{Route: n.Route, Hidden: n.Hidden, Name: n.Name})
	}
	if s.SiteNameMultiline == nil {
		s.SiteNameMultiline = []string{}
	}
	if s.TicketThemes == nil {
		s.TicketThemes = []string{}
	}
	return s
}

// functionStatus is the tagged result of join and drop.
type functionStatus struct {
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Points  *float64 `json:"points"`
	Point   *float64 `json:"point"`
}

func (f functionStatus) err(op string) error {
	if f.Status != "error" {
		return nil
	}
	msg := f.Error
	if msg == "" {
		msg = f.Message
	}
	return remoteError(op, msg)
}

func (f functionStatus) points() int {
	switch {
	case f.Points != nil:
		return int(math.Round(*f.Points))
	case f.Point != nil:
		return int(math.Round(*f.Point))
	}
	return 0
}

func remoteError(op, msg string) error {
	return &domain.RemoteError{Op: op, Message: msg}
}

type wireMinimalTalk struct {
	ID       string    `json:"id"`
	ObjectID string    `json:"objectId"`
	Slug     string    `json:"slug"`
	Start    timestamp `json:"start"`
	End      timestamp `json:"end"`
}
