package discord

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Phase            string    `json:"phase"`
	Connected        bool      `json:"connected"`
	UnsyncedScopes   []string  `json:"unsynced_scopes,omitempty"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
}

// RegistryStatus is the registry state reported by the health endpoint.
type RegistryStatus interface {
	Phase() domain.Phase
	UnsyncedScopes() []string
}

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandTime atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandTime.Store(time.Now().UnixNano())
}

func lastCommand() time.Time {
	ns := lastCommandTime.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// HandleHealth returns the bot's health status. Anything short of connected,
// ready, and fully synced reports degraded.
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot != nil && h.bot.Connected()
	phase := h.registry.Phase()
	unsynced := h.registry.UnsyncedScopes()

	status := "healthy"
	code := http.StatusOK
	if !connected || phase != domain.PhaseReady || len(unsynced) > 0 {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	health := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).String(),
		Phase:            phase.String(),
		Connected:        connected,
		UnsyncedScopes:   unsynced,
		CommandsReceived: commandCounter.Load(),
		LastCommandTime:  lastCommand(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Debug("Failed to encode health response", "error", err)
	}
}
