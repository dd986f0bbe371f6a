package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"virtualconf/internal/domain"
)

type challengeService struct {
	content domain.ContentStore
	remote  domain.RemoteFunctions
	logger  *slog.Logger
}

func NewChallengeService(content domain.ContentStore, remote domain.RemoteFunctions, logger *slog.Logger) domain.ChallengeService {
	return &challengeService{content: content, remote: remote, logger: orDiscard(logger)}
}

func (c *challengeService) List(ctx context.Context) ([]*domain.Challenge, error) {
	return c.content.ListChallenges(ctx)
}

// Claim redeems a challenge code for the session's participant, named by
// display name. Zero points means the code had already been claimed.
func (c *challengeService) Claim(ctx context.Context, s *domain.Session, code string) (*domain.ClaimResult, error) {
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	res, err := c.remote.ClaimPoints(ctx, code, s.Name)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "points claimed", slog.String("user_id", s.ID), slog.Int("points", res.Points))
	return res, nil
}
