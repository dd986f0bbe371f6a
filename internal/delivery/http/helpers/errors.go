package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"virtualconf/internal/domain"
)

// Messages shown to users for sign-in failures.
const (
	MsgBadEmail      = "Invalid email"
	MsgNotRecognized = "This event is invite-only."
	MsgSignIn        = "You should sign in first"
)

// WriteServiceError maps a service error to its status and error code.
// Errors without a mapping are logged and reported as internal errors.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var blocked *domain.BlockedError
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadEmail, MsgBadEmail)
	case errors.Is(err, domain.ErrNotRecognized):
		WriteJSONError(w, http.StatusForbidden, ErrCodeNotRecognized, MsgNotRecognized)
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, MsgSignIn)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.As(err, &blocked):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, blocked.Reason)
	case errors.Is(err, domain.ErrActionInProgress):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		if re, ok := domain.IsRemote(err); ok {
			msg := re.Message
			if msg == "" {
				msg = "remote operation failed"
			}
			WriteJSONError(w, http.StatusBadGateway, ErrCodeBadGateway, msg)
			return
		}
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
