package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/internal/api"
	"github.com/dmitrymomot/contactdesk/pkg/environment"
)

func TestRecoverer(t *testing.T) {
	t.Parallel()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	})

	for _, tt := range []struct {
		env        environment.Environment
		wantDetail bool
	}{
		{environment.Development, true},
		{environment.Production, false},
	} {
		t.Run(tt.env.String(), func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logs, nil))
			h := environment.Middleware(tt.env)(api.Recoverer(log)(panicking))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Erro interno do servidor", body["message"])
			if tt.wantDetail {
				assert.Equal(t, "nil map write", body["error"])
			} else {
				assert.NotContains(t, body, "error")
			}
			assert.Contains(t, logs.String(), "panic recovered")
		})
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	h := api.AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.Equal(t, map[string]any{"method": "GET", "path": "/api/health"}, entry["http"])
}

func TestConfig_AllowedOrigins(t *testing.T) {
	t.Parallel()

	dev := api.Config{Environment: environment.Development, FrontendURL: "https://site.example.com"}
	assert.Equal(t, []string{"*"}, dev.AllowedOrigins())

	prod := api.Config{Environment: environment.Production, FrontendURL: " https://site.example.com/ , https://admin.example.com"}
	assert.Equal(t, []string{"https://site.example.com", "https://admin.example.com"}, prod.AllowedOrigins())

	assert.Empty(t, api.Config{Environment: environment.Production}.AllowedOrigins())
}
