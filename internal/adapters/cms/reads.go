package cms

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"virtualconf/internal/domain"
)

// Class names, without the configured prefix.
const (
	classStage       = "Stage"
	classTalk        = "Talk"
	classSpeaker     = "Speaker"
	classParticipant = "Participant"
	classTeam        = "Team"
	classChallenge   = "Challenge"
	classProduct     = "Product"
	classSetting     = "Site_Setting"
	classCategory    = "Category"
)

var talkIncludes = []string{
	"category",
	"speaker_collection",
	"speaker_collection.image",
	"participants",
}

func (c *Client) talks(ctx context.Context, records []wireTalk) []*domain.Talk {
	out := make([]*domain.Talk, 0, len(records))
	for _, r := range records {
		if r.Status != "" && r.Status != publishedStatus {
			continue
		}
		t, err := r.toDomain(c.cfg.SourceZone)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping invalid talk", "err", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func byStart(a, b *domain.Talk) int {
	return a.Start.Compare(b.Start)
}

func (c *Client) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	var records []wireStage
	err := c.find(ctx, classStage, query{
		where: published(nil),
		include: []string{
			"schedule_collection",
			"schedule_collection.speaker_collection",
			"schedule_collection.speaker_collection.image",
			"schedule_collection.participants",
			"schedule_collection.category",
			"warmup_exercises",
		},
		order: "order",
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}

	stages := make([]*domain.Stage, 0, len(records))
	for _, r := range records {
		scheduled := make([]wireTalk, 0, len(r.Schedule))
		for _, t := range r.Schedule {
			if t.Status == publishedStatus {
				scheduled = append(scheduled, t)
			}
		}
		talks := c.talks(ctx, scheduled)
		slices.SortStableFunc(talks, byStart)

		s := &domain.Stage{
			Name:            r.Name,
			Slug:            r.Slug,
			Description:     r.Description,
			Live:            r.Live,
			Schedule:        talks,
			WarmupExercises: make([]domain.Exercise, 0, len(r.Warmup)),
		}
		for _, e := range r.Warmup {
			s.WarmupExercises = append(s.WarmupExercises, domain.Exercise{Name: e.Name, Description: e.Description})
		}
		stages = append(stages, s)
	}
	return stages, nil
}

func (c *Client) ListTalks(ctx context.Context) ([]*domain.Talk, error) {
	var records []wireTalk
	err := c.find(ctx, classTalk, query{
		where:   published(nil),
		include: talkIncludes,
		limit:   defaultLimit,
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}
	return c.talks(ctx, records), nil
}

func (c *Client) GetTalkBySlug(ctx context.Context, slug string) (*domain.Talk, error) {
	var records []wireTalk
	err := c.find(ctx, classTalk, query{
		where:   published(map[string]any{"slug": slug}),
		include: talkIncludes,
		limit:   1,
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("get talk %q: %w", slug, err)
	}
	talks := c.talks(ctx, records)
	if len(talks) == 0 {
		return nil, fmt.Errorf("talk %q: %w", slug, domain.ErrNotFound)
	}
	return talks[0], nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var records []wireCategory
	if err := c.find(ctx, classCategory, query{where: published(nil)}, &records); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*domain.Category, 0, len(records))
	for _, r := range records {
		cat := r.toDomain()
		out = append(out, &cat)
	}
	slices.SortFunc(out, func(a, b *domain.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (c *Client) FindParticipantByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	var records []wireParticipant
	err := c.find(ctx, classParticipant, query{
		where: published(map[string]any{"Email": email}),
		limit: 1,
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	p := records[0].toDomain()
	return &p, nil
}

func (c *Client) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	var records []wireParticipant
	err := c.find(ctx, classParticipant, query{
		where: published(nil),
		limit: defaultLimit,
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	out := make([]*domain.Participant, 0, len(records))
	for _, r := range records {
		p := r.toDomain()
		out = append(out, &p)
	}
	return out, nil
}

func (c *Client) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	var records []wireTeam
	err := c.find(ctx, classTeam, query{
		where:   published(nil),
		include: []string{"Members"},
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make([]*domain.Team, 0, len(records))
	for _, r := range records {
		team := &domain.Team{Name: r.Name, Members: make([]domain.Participant, 0, len(r.Members))}
		for _, m := range r.Members {
			team.Members = append(team.Members, m.toDomain())
		}
		out = append(out, team)
	}
	return out, nil
}

func (c *Client) ListChallenges(ctx context.Context) ([]*domain.Challenge, error) {
	var records []wireChallenge
	err := c.find(ctx, classChallenge, query{
		where: published(map[string]any{"Enabled": true}),
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	out := make([]*domain.Challenge, 0, len(records))
	for _, r := range records {
		out = append(out, &domain.Challenge{
			Name:        r.Name,
			Points:      int(r.Points),
			Type:        r.Type,
			Description: r.Description,
			Code:        r.Code,
			TypeformURL: r.TypeformURL,
		})
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var records []wireProduct
	err := c.find(ctx, classProduct, query{
		where:   published(nil),
		include: []string{"Image", "Asset_Download"},
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*domain.Product, 0, len(records))
	for _, r := range records {
		out = append(out, &domain.Product{
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			ImageURL:    r.Image.url(),
			AssetURL:    r.Asset.url(),
		})
	}
	slices.SortFunc(out, func(a, b *domain.Product) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (c *Client) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	var records []wireSpeaker
	err := c.find(ctx, classSpeaker, query{
		where:   published(nil),
		include: []string{"image", "image_square", "talk"},
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	out := make([]*domain.Speaker, 0, len(records))
	for _, r := range records {
		s := r.toDomain()
		out = append(out, &s)
	}
	slices.SortFunc(out, func(a, b *domain.Speaker) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// GetSiteSetting returns the first published setting, or an empty one.
func (c *Client) GetSiteSetting(ctx context.Context) (*domain.SiteSetting, error) {
	var records []wireSetting
	err := c.find(ctx, classSetting, query{
		where:   published(nil),
		include: []string{"Navigation_Items"},
		limit:   1,
	}, &records)
	if err != nil {
		return nil, fmt.Errorf("get site setting: %w", err)
	}
	if len(records) == 0 {
		return wireSetting{}.toDomain(), nil
	}
	return records[0].toDomain(), nil
}
