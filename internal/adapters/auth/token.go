package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"virtualconf/internal/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	ParticipantID string `json:"pid"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	TicketNumber  int    `json:"ticket"`
	Admin         bool   `json:"admin,omitempty"`
}

// JWT signs and verifies session tokens with HS256.
type JWT struct {
	secret []byte
	now    func() time.Time
}

// NewJWT returns a TokenIssuer and TokenVerifier for the given secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for s that expires after expiry. The token id is the
// session id.
func (j *JWT) Issue(s *domain.Session, expiry time.Duration) (string, error) {
	now := j.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.SessionID,
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		ParticipantID: s.ID,
		Email:         s.Username,
		Name:          s.Name,
		TicketNumber:  s.TicketNumber,
		Admin:         s.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses token and returns the session it carries. Invalid, expired
// or foreign tokens yield domain.ErrUnauthenticated.
func (j *JWT) Verify(token string) (*domain.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, errors.New("missing session id"))
	}
	s := &domain.Session{
		SessionID:    claims.ID,
		ID:           claims.ParticipantID,
		TicketNumber: claims.TicketNumber,
		Username:     claims.Email,
		Name:         claims.Name,
		IsAdmin:      claims.Admin,
	}
	if claims.IssuedAt != nil {
		s.CreatedAt = claims.IssuedAt.UTC()
	}
	return s, nil
}
