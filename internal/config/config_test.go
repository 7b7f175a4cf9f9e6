package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/apperr"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "file::memory:")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://quizhub.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Env)
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, []string{"http://localhost:5173", "https://quizhub.example.com"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
		assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
		assert.Equal(t, "/uploads", cfg.Uploads.BaseURL)
		assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "file::memory:")
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect(context.Background(), DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) Problem {
	t.Helper()
	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"Validation", apperr.Invalid("title", "Title is required"), http.StatusBadRequest, "Title is required"},
		{"NotFound", apperr.New(apperr.ErrNotFound, "quiz not found"), http.StatusNotFound, "quiz not found"},
		{"Conflict", apperr.ErrConflict, http.StatusConflict, "conflict"},
		{"Unavailable", apperr.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"Internal", errors.New("pq: connection refused on 10.0.0.3"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/api/quizzes/1", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			p := decodeProblem(t, rec)
			assert.Equal(t, tc.status, p.Status)
			assert.Equal(t, http.StatusText(tc.status), p.Title)
			assert.Equal(t, tc.detail, p.Detail)
			assert.NotEmpty(t, p.TraceID)
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"id": 4})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":4}`, rec.Body.String())
}
