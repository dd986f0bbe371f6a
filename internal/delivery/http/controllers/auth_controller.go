package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register
type RegisterRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	if strings.TrimSpace(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// AdminLoginRequest is the request body for POST /auth/admin
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l AdminLoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SessionResponse is the data of a successful sign-in.
type SessionResponse struct {
	Session   *domain.Session `json:"session"`
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
}

type AuthController struct {
	Logger       *slog.Logger
	Service      domain.RegistrationService
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.RegistrationService, sessionTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		SessionTTL:   sessionTTL,
		SecureCookie: secureCookie,
	}
}

func (c *AuthController) setCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) signedIn(w http.ResponseWriter, s *domain.Session, token string) {
	c.setCookie(w, token, int(c.SessionTTL.Seconds()))
	h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Session: s, Token: token, TokenType: "Bearer"})
}

// Register godoc
// @Summary Sign in to the invite-only event
// @Description Signs in an invited participant by email. The session token is returned and set as the user-id cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Participant email"
// @Success 200 {object} helpers.APIResponse "data contains session and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or bad_email"
// @Failure 403 {object} helpers.APIResponse "error.code: not_recognized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	s, token, err := c.Service.Register(r.Context(), req.Email)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.signedIn(w, s, token)
}

// AdminLogin godoc
// @Summary Administrator sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Administrator credentials"
// @Success 200 {object} helpers.APIResponse "data contains session and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/admin [post]
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	s, token, err := c.Service.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.signedIn(w, s, token)
}

// Logout godoc
// @Summary Sign out
// @Description Clears the current user and the cached booking list, and expires the cookie.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	if err := c.Service.Logout(r.Context(), s); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.setCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the session"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.SessionFromContext(r.Context())
	h.WriteJSONSuccess(w, http.StatusOK, s)
}
