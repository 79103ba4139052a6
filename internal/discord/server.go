package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GuildCommandBot_Go/internal/metrics"
)

// HTTPServer serves health and metrics for the bot
type HTTPServer struct {
	server   *http.Server
	bot      *Bot
	registry RegistryStatus
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(port string, bot *Bot, registry RegistryStatus) *HTTPServer {
	srv := &HTTPServer{
		bot:      bot,
		registry: registry,
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/healthz", srv.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting health HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Health HTTP server shutdown failed", "error", err)
	}
}
