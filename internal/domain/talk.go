package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// WorkshopMarker marks talks of which a participant may hold only one.
const WorkshopMarker = "abracademy-workshop"

// Capacity is a talk's seat limit. Seats == 0 means unlimited. A capacity
// that arrived as a non-numeric value is not Valid and disables both the
// fully-booked check and the remaining-seats display.
type Capacity struct {
	Seats int
	Valid bool
}

// Unlimited returns a valid capacity without a seat limit.
func Unlimited() Capacity { return Capacity{Valid: true} }

// Seats returns a valid capacity of n seats.
func Seats(n int) Capacity { return Capacity{Seats: n, Valid: true} }

// Limited reports whether the capacity enforces a seat limit.
func (c Capacity) Limited() bool { return c.Valid && c.Seats != 0 }

func (c Capacity) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.Seats)), nil
}

// UnmarshalJSON accepts numbers and numeric strings. A missing or null value
// is treated as 0 (unlimited); anything else is an invalid capacity.
func (c *Capacity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Unlimited()
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Seats(int(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*c = Unlimited()
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*c = Seats(int(f))
			return nil
		}
	}
	*c = Capacity{}
	return nil
}

// Category is presentational metadata attached to talks.
// swagger:model Category
type Category struct {
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	StrokeColor     string `json:"stroke_color"`
	BackgroundColor string `json:"background_color"`
}

// Talk is a scheduled session with a capacity, time window and speakers.
// swagger:model Talk
type Talk struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description,omitempty"`
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Speakers     []Speaker     `json:"speakers"`
	Participants []Participant `json:"participants"`
	MaxCapacity  Capacity      `json:"max_capacity"`
	SelfAssign   bool          `json:"self_assign"`
	Categories   []Category    `json:"categories,omitempty"`

	ConferenceLink string `json:"zoom_link,omitempty"`
	BoardLink      string `json:"mural_link,omitempty"`
	BoardEmbedURL  string `json:"mural_embed,omitempty"`
	RoomLink       string `json:"mibo_link,omitempty"`
	VideoURL       string `json:"video_url,omitempty"`
}

// Minimal returns the reduced projection used for the "my talks" cache.
func (t *Talk) Minimal() MinimalTalk {
	return MinimalTalk{ID: t.ID, Slug: t.Slug, Start: t.Start, End: t.End}
}

// PrimaryCategory returns the first category, which drives display styling.
func (t *Talk) PrimaryCategory() (Category, bool) {
	if len(t.Categories) == 0 {
		return Category{}, false
	}
	return t.Categories[0], true
}

// MinimalTalk is the projection of a Talk kept in the "my talks" cache:
// just enough for overlap and exclusivity checks.
// swagger:model MinimalTalk
type MinimalTalk struct {
	ID    string    `json:"id"`
	Slug  string    `json:"slug"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Availability is the join/drop state of a talk for one user.
// swagger:model Availability
type Availability struct {
	AlreadyBooked      bool   `json:"already_booked"`
	RemainingSeats     int    `json:"remaining_seats"`
	ShowRemainingSeats bool   `json:"show_remaining_seats"`
	IsJoinable         bool   `json:"is_joinable"`
	IsCancellable      bool   `json:"is_cancellable"`
	IsFullyBooked      bool   `json:"is_fully_booked"`
	BlockedReason      string `json:"blocked_reason,omitempty"`
}

// TalkWithAvailability bundles a talk with the viewer's availability state.
type TalkWithAvailability struct {
	Talk         *Talk        `json:"talk"`
	Availability Availability `json:"availability"`
	IsLive       bool         `json:"is_live"`
	TimeRange    string       `json:"time_range"`
}

// Exercise is a warm-up activity shown on a stage.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stage groups a schedule of talks.
// swagger:model Stage
type Stage struct {
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description,omitempty"`
	Live            bool       `json:"live"`
	Schedule        []*Talk    `json:"schedule"`
	WarmupExercises []Exercise `json:"warmup_exercises"`
}

// TestStageSlug is the stage only administrators may see.
const TestStageSlug = "test-stage"
