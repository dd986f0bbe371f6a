package domain

import (
	"context"
	"time"
)

// Session is the signed-in user. SessionID scopes all per-session state;
// ID is the participant's object id in the document store.
// swagger:model Session
type Session struct {
	SessionID    string    `json:"-"`
	ID           string    `json:"id"`
	TicketNumber int       `json:"ticket_number"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Email returns the user-matching key of the session.
func (s *Session) Email() string {
	if s == nil {
		return ""
	}
	return s.Username
}

// PasswordHasher verifies passwords against stored hashes.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(s *Session, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the session it carries.
type TokenVerifier interface {
	Verify(token string) (*Session, error)
}

// RegistrationService handles sign-in for the invite-only event.
type RegistrationService interface {
	// Register signs in an invited participant by email and returns the session and its token.
	Register(ctx context.Context, email string) (*Session, string, error)
	// AdminLogin signs in the configured administrator.
	AdminLogin(ctx context.Context, email, password string) (*Session, string, error)
	// Resolve returns the live session for a token. Expired or unknown sessions yield ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, s *Session) error
}

// PreferenceService stores per-session display preferences.
type PreferenceService interface {
	Timezone(ctx context.Context, s *Session) string
	SetTimezone(ctx context.Context, s *Session, name string) error
	TimezoneOptions(ctx context.Context, s *Session, detected string) []string
}
