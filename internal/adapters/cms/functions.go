package cms

import (
	"context"
	"fmt"

	"virtualconf/internal/domain"
)

// Cloud function names.
const (
	fnJoinTalk    = "joinTalk"
	fnDropTalk    = "dropTalk"
	fnMyTalks     = "myTalks"
	fnClaimPoints = "claimPoints"
)

func (c *Client) JoinTalk(ctx context.Context, slug, participantID string) (*domain.JoinResult, error) {
	var res functionStatus
	err := c.call(ctx, fnJoinTalk, map[string]any{"slug": slug, "participantId": participantID}, &res)
	if err != nil {
		return nil, err
	}
	if err := res.err(fnJoinTalk); err != nil {
		return nil, err
	}
	return &domain.JoinResult{Points: res.points()}, nil
}

func (c *Client) DropTalk(ctx context.Context, slug, participantID string) error {
	var res functionStatus
	err := c.call(ctx, fnDropTalk, map[string]any{"slug": slug, "participantId": participantID}, &res)
	if err != nil {
		return err
	}
	return res.err(fnDropTalk)
}

func (c *Client) MyTalks(ctx context.Context, participantID string) ([]domain.MinimalTalk, error) {
	var res struct {
		MyTalks []wireMinimalTalk `json:"myTalks"`
	}
	if err := c.call(ctx, fnMyTalks, map[string]any{"participant": participantID}, &res); err != nil {
		return nil, err
	}
	out := make([]domain.MinimalTalk, 0, len(res.MyTalks))
	for _, w := range res.MyTalks {
		if w.Slug == "" {
			continue
		}
		start, err := w.Start.parse(c.cfg.SourceZone)
		if err != nil {
			return nil, fmt.Errorf("myTalks %q: start: %w", w.Slug, err)
		}
		end, err := w.End.parse(c.cfg.SourceZone)
		if err != nil {
			end = start
		}
		id := w.ID
		if id == "" {
			id = w.ObjectID
		}
		out = append(out, domain.MinimalTalk{ID: id, Slug: w.Slug, Start: start, End: end})
	}
	return out, nil
}

func (c *Client) ClaimPoints(ctx context.Context, code, participantName string) (*domain.ClaimResult, error) {
	var res functionStatus
	err := c.call(ctx, fnClaimPoints, map[string]any{"code": code, "participant": participantName}, &res)
	if err != nil {
		return nil, err
	}
	if err := res.err(fnClaimPoints); err != nil {
		return nil, err
	}
	return &domain.ClaimResult{Points: res.points()}, nil
}
