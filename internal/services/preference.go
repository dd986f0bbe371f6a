package services

import (
	"context"
	"fmt"
	"time"

	"virtualconf/internal/cache"
	"virtualconf/internal/domain"
	"virtualconf/internal/schedule"
)

type preferenceService struct {
	store       *cache.Store
	defaultZone string
}

// NewPreferenceService stores the display timezone per session. defaultZone
// is used when nothing valid is stored.
func NewPreferenceService(store *cache.Store, defaultZone string) domain.PreferenceService {
	return &preferenceService{store: store, defaultZone: defaultZone}
}

func (p *preferenceService) Timezone(ctx context.Context, s *domain.Session) string {
	if s == nil {
		return p.defaultZone
	}
	var name string
	if !p.store.Scope(s.SessionID).Get(ctx, cache.KeyTimezone, &name) || name == "" {
		return p.defaultZone
	}
	if _, err := time.LoadLocation(name); err != nil {
		return p.defaultZone
	}
	return name
}

func (p *preferenceService) SetTimezone(ctx context.Context, s *domain.Session, name string) error {
	if s == nil {
		return domain.ErrUnauthenticated
	}
	if name == "" {
		return fmt.Errorf("%w: timezone is required", domain.ErrInvalidInput)
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidInput, name)
	}
	p.store.Scope(s.SessionID).Set(ctx, cache.KeyTimezone, name, cache.DefaultTTL)
	return nil
}

// TimezoneOptions lists the default zone, the session's current zone and the
// detected zone, without duplicates.
func (p *preferenceService) TimezoneOptions(ctx context.Context, s *domain.Session, detected string) []string {
	return schedule.TimezoneOptions(p.defaultZone, p.Timezone(ctx, s), detected)
}
