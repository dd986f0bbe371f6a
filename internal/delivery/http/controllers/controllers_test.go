package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
	"virtualconf/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func signedIn(ctx context.Context) context.Context {
	return middleware.SetSession(ctx, &domain.Session{SessionID: "s1", ID: "p1", Username: "ada@example.com"})
}

// decode unmarshals the envelope and its data into dest (when non-nil).
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if dest != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env.Error
}
