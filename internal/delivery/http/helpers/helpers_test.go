package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtualconf/internal/domain"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"bad email", domain.ErrInvalidEmail, http.StatusBadRequest, ErrCodeBadEmail, MsgBadEmail},
		{"not recognized", domain.ErrNotRecognized, http.StatusForbidden, ErrCodeNotRecognized, MsgNotRecognized},
		{"invalid input", fmt.Errorf("%w: code is required", domain.ErrInvalidInput), http.StatusBadRequest, ErrCodeBadRequest, "invalid input: code is required"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthorized, MsgSignIn},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials"},
		{"not found", fmt.Errorf("talk: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound, "not found"},
		{"blocked", &domain.BlockedError{Err: domain.ErrNotJoinable, Reason: "this talk is fully booked"}, http.StatusConflict, ErrCodeConflict, "this talk is fully booked"},
		{"in progress", domain.ErrActionInProgress, http.StatusConflict, ErrCodeConflict, domain.ErrActionInProgress.Error()},
		{"remote", &domain.RemoteError{Op: "joinTalk", Message: "Talk is full"}, http.StatusBadGateway, ErrCodeBadGateway, "Talk is full"},
		{"remote without message", &domain.RemoteError{Op: "joinTalk"}, http.StatusBadGateway, ErrCodeBadGateway, "remote operation failed"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteServiceError(w, r, slog.New(slog.DiscardHandler), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			apiErr := decodeError(t, w)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

type loginDTO struct {
	Email string `json:"email"`
}

func (d loginDTO) Validate() []string {
	if d.Email == "" {
		return []string{"email is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"valid", `{"email":"ada@example.com"}`, true},
		{"unknown field", `{"email":"a","extra":1}`, false},
		{"malformed", `{`, false},
		{"fails validation", `{"email":""}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dto loginDTO
			assert.Equal(t, tt.wantOK, DecodeAndValidate(w, r, &dto))
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: 1}},
		{"page=3&page_size=10", domain.PaginationParams{Page: 3, PageSize: 10}},
		{"page=-1&page_size=abc", domain.PaginationParams{Page: 1}},
		{"page_size=100000", domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/leaderboard?"+tt.query, nil)
		assert.Equal(t, tt.want, ParsePagination(r), tt.query)
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 25, TotalPages: 3}, NewPaginationMeta(domain.PaginationParams{Page: 2, PageSize: 10}, 25))
	assert.Equal(t, 1, NewPaginationMeta(domain.PaginationParams{Page: 1}, 25).TotalPages)
}
