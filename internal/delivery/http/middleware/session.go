package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/domain"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "user-id"

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver turns a token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// SetSession returns a context carrying s.
func SetSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the signed-in session, if any.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// TokenFromRequest returns the bearer token, falling back to the session
// cookie. Other Authorization schemes are ignored.
func TokenFromRequest(r *http.Request) string {
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) {
		if token := strings.TrimSpace(auth[len(prefix):]); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// Session resolves the request's token and stores the session in the
// context. Requests without a valid token continue anonymously.
func Session(resolver SessionResolver, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		s, err := resolver.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				logger.WarnContext(r.Context(), "session lookup failed", "err", err)
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetSession(r.Context(), s)))
	})
}

// RequireSession responds 401 unless the request carries a session.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, h.MsgSignIn)
			return
		}
		next(w, r)
	}
}
