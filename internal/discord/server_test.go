package discord

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
)

type stubRegistryStatus struct {
	phase    domain.Phase
	unsynced []string
}

func (s stubRegistryStatus) Phase() domain.Phase      { return s.phase }
func (s stubRegistryStatus) UnsyncedScopes() []string { return s.unsynced }

func getHealth(t *testing.T, srv *HTTPServer) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return rec.Code, status
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		connected  bool
		registry   stubRegistryStatus
		wantCode   int
		wantStatus string
	}{
		{"healthy", true, stubRegistryStatus{phase: domain.PhaseReady}, http.StatusOK, "healthy"},
		{"disconnected", false, stubRegistryStatus{phase: domain.PhaseReady}, http.StatusServiceUnavailable, "degraded"},
		{"bootstrapping", true, stubRegistryStatus{phase: domain.PhaseBootstrapping}, http.StatusServiceUnavailable, "degraded"},
		{"unsynced scope", true, stubRegistryStatus{phase: domain.PhaseReady, unsynced: []string{"111"}}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := &Bot{}
			bot.connected.Store(tt.connected)
			srv := NewHTTPServer("0", bot, tt.registry)

			code, status := getHealth(t, srv)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.connected, status.Connected)
			assert.Equal(t, tt.registry.phase.String(), status.Phase)
			assert.Equal(t, tt.registry.unsynced, status.UnsyncedScopes)
		})
	}
}

func TestHandleHealth_CountsCommands(t *testing.T) {
	bot := &Bot{}
	srv := NewHTTPServer("0", bot, stubRegistryStatus{phase: domain.PhaseReady})

	_, before := getHealth(t, srv)
	RecordCommand()
	RecordCommand()
	_, after := getHealth(t, srv)

	assert.Equal(t, before.CommandsReceived+2, after.CommandsReceived)
	assert.False(t, after.LastCommandTime.IsZero())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := NewHTTPServer("0", &Bot{}, stubRegistryStatus{})

	// Hit healthz first so the HTTP metrics have a sample.
	getHealth(t, srv)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
