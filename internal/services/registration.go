package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"virtualconf/internal/booking"
	"virtualconf/internal/cache"
	"virtualconf/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Tokens issues and verifies session tokens.
type Tokens interface {
	domain.TokenIssuer
	domain.TokenVerifier
}

// RegistrationConfig holds the session lifetime and the optional
// administrator credentials.
type RegistrationConfig struct {
	SessionTTL        time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

type registrationService struct {
	participants domain.ParticipantStore
	content      domain.ContentStore
	tokens       Tokens
	hasher       domain.PasswordHasher
	store        *cache.Store
	emailService domain.EmailService
	config       RegistrationConfig
	now          func() time.Time
	logger       *slog.Logger
}

func NewRegistrationService(
	participants domain.ParticipantStore,
	content domain.ContentStore,
	tokens Tokens,
	hasher domain.PasswordHasher,
	store *cache.Store,
	emailService domain.EmailService,
	config RegistrationConfig,
	logger *slog.Logger,
) domain.RegistrationService {
	if config.SessionTTL <= 0 {
		config.SessionTTL = cache.DefaultTTL
	}
	return &registrationService{
		participants: participants,
		content:      content,
		tokens:       tokens,
		hasher:       hasher,
		store:        store,
		emailService: emailService,
		config:       config,
		now:          time.Now,
		logger:       orDiscard(logger),
	}
}

// Register looks the participant up by the email as typed, trimmed of
// surrounding space. The session carries the participant's stored email.
func (s *registrationService) Register(ctx context.Context, email string) (*domain.Session, string, error) {
	email = strings.TrimSpace(email)
	if !emailRegexp.MatchString(email) {
		return nil, "", domain.ErrInvalidEmail
	}

	p, err := s.participants.FindParticipantByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrNotRecognized
	}
	if err != nil {
		return nil, "", fmt.Errorf("find participant: %w", err)
	}

	if p.Email != "" {
		email = p.Email
	}

	site := s.siteSetting(ctx)
	sess, token, err := s.open(ctx, &domain.Session{
		ID:       p.ID,
		Username: email,
		Name:     p.Name,
		IsAdmin:  p.Admin,
	}, site)
	if err != nil {
		return nil, "", err
	}

	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			Email:        email,
			Name:         p.Name,
			TicketNumber: sess.TicketNumber,
			SiteName:     site.SiteName,
			SiteURL:      site.SiteURL,
		}
		if err := s.emailService.SendRegistration(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "registration email failed", slog.String("email", email), slog.Any("error", err))
		}
	}
	return sess, token, nil
}

func (s *registrationService) AdminLogin(ctx context.Context, email, password string) (*domain.Session, string, error) {
	admin := strings.TrimSpace(s.config.AdminEmail)
	if admin == "" || s.config.AdminPasswordHash == "" || s.hasher == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), admin) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.config.AdminPasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	sess := &domain.Session{ID: "admin", Username: admin, Name: "Admin", IsAdmin: true}
	if p, err := s.participants.FindParticipantByEmail(ctx, admin); err == nil {
		sess.ID = p.ID
		if p.Email != "" {
			sess.Username = p.Email
		}
		if p.Name != "" {
			sess.Name = p.Name
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("find participant: %w", err)
	}
	return s.open(ctx, sess, s.siteSetting(ctx))
}

// open assigns a session id and ticket, signs the token and stores the
// session as currentUser.
func (s *registrationService) open(ctx context.Context, sess *domain.Session, site *domain.SiteSetting) (*domain.Session, string, error) {
	sess.SessionID = uuid.NewString()
	sess.CreatedAt = s.now().UTC().Truncate(time.Second)
	sess.TicketNumber = site.SampleTicketNumber
	if sess.TicketNumber == 0 {
		n, err := ticketNumber()
		if err != nil {
			return nil, "", fmt.Errorf("generate ticket number: %w", err)
		}
		sess.TicketNumber = n
	}

	token, err := s.tokens.Issue(sess, s.config.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	s.store.Scope(sess.SessionID).Set(ctx, cache.KeyCurrentUser, sess, cache.DefaultTTL)
	if sess.Username != "" {
		ticket := domain.Ticket{Username: sess.Username, Name: sess.Name, TicketNumber: sess.TicketNumber}
		s.store.Set(ctx, cache.TicketKey(sess.Username), ticket, cache.TicketTTL)
	}
	s.logger.InfoContext(ctx, "session opened", slog.String("user_id", sess.ID), slog.Bool("admin", sess.IsAdmin))
	return sess, token, nil
}

func (s *registrationService) siteSetting(ctx context.Context) *domain.SiteSetting {
	site, err := s.content.GetSiteSetting(ctx)
	if err != nil || site == nil {
		if err != nil {
			s.logger.WarnContext(ctx, "site setting unavailable", slog.Any("error", err))
		}
		return &domain.SiteSetting{}
	}
	return site
}

func (s *registrationService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	var current domain.Session
	if !s.store.Scope(claims.SessionID).Get(ctx, cache.KeyCurrentUser, &current) {
		return nil, domain.ErrUnauthenticated
	}
	current.SessionID = claims.SessionID
	return &current, nil
}

func (s *registrationService) Logout(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return domain.ErrUnauthenticated
	}
	scope := s.store.Scope(sess.SessionID)
	scope.Remove(ctx, cache.KeyCurrentUser)
	booking.NewReducer(scope).Dispatch(ctx, booking.Reset())
	return nil
}

const (
	minTicketNumber = 100000
	maxTicketNumber = 999999
)

func ticketNumber() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxTicketNumber-minTicketNumber+1))
	if err != nil {
		return 0, err
	}
	return minTicketNumber + int(n.Int64()), nil
}
