// Package cache stores small per-session values with a time-to-live.
//
// Entries are written as {"value": ..., "expiry": unixMillis} and expire
// lazily: a read past the expiry removes the entry and reports it absent.
// There is no capacity bound and no background eviction. A Store without a
// backend behaves like unavailable browser storage: reads are absent and
// writes are silently skipped.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Keys and TTLs of the per-session entries. Expiry is anchored to the write,
// not the last read.
const (
	KeyCurrentUser = "currentUser"
	KeyMyTalks     = "myTalks"
	KeyTimezone    = "timezone"

	DefaultTTL = 24 * time.Hour

	// TicketTTL keeps shared ticket pages alive for a week.
	TicketTTL = 7 * 24 * time.Hour
)

// TicketKey is the unscoped key of the public ticket for username.
func TicketKey(username string) string {
	return "ticket:" + username
}

// Backend persists serialized entries. Load reports ok=false for a missing key.
type Backend interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Store(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type entry struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"`
}

// Store is an expiring key/value store over a Backend.
type Store struct {
	backend Backend
	now     func() time.Time
	logger  *slog.Logger
	prefix  string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for backend failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns a Store over backend. A nil backend yields an unavailable store.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scope returns a view whose keys are private to the given session.
func (s *Store) Scope(sessionID string) *Store {
	scoped := *s
	scoped.prefix = s.prefix + sessionID + ":"
	return &scoped
}

// Available reports whether the store has a backend.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// Set stores value under key until now+ttl, overwriting any prior value.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !s.Available() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "cache marshal failed", "key", key, "err", err)
		return
	}
	data, err := json.Marshal(entry{Value: raw, Expiry: s.now().Add(ttl).UnixMilli()})
	if err != nil {
		s.logger.WarnContext(ctx, "cache marshal failed", "key", key, "err", err)
		return
	}
	if err := s.backend.Store(ctx, s.prefix+key, data); err != nil {
		s.logger.WarnContext(ctx, "cache store failed", "key", key, "err", err)
	}
}

// Get decodes the value stored under key into dest. It returns false when
// the entry is missing, expired (the entry is removed) or unreadable.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if !s.Available() {
		return false
	}
	data, ok, err := s.backend.Load(ctx, s.prefix+key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache load failed", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.Remove(ctx, key)
		return false
	}
	if s.now().UnixMilli() > e.Expiry {
		s.Remove(ctx, key)
		return false
	}
	if err := json.Unmarshal(e.Value, dest); err != nil {
		return false
	}
	return true
}

// Remove deletes the entry under key.
func (s *Store) Remove(ctx context.Context, key string) {
	if !s.Available() {
		return
	}
	if err := s.backend.Delete(ctx, s.prefix+key); err != nil {
		s.logger.WarnContext(ctx, "cache delete failed", "key", key, "err", err)
	}
}
