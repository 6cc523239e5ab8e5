// Package health provides a lightweight HTTP server for container health checks.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// ArchivePinger defines the interface for checking archive connectivity.
type ArchivePinger interface {
	Ping(ctx context.Context) error
}

// SnapshotSource reports the current snapshot, erroring before the first
// successful cycle.
type SnapshotSource interface {
	Current() (models.Snapshot, error)
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Server is a lightweight HTTP server for health check endpoints.
type Server struct {
	serviceName string
	port        int
	server      *http.Server
	logger      *logrus.Logger
	archive     ArchivePinger
	snapshots   SnapshotSource
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Port        int
	Logger      *logrus.Logger
	Archive     ArchivePinger // nil when the archive is disabled
	Snapshots   SnapshotSource
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	return &Server{
		serviceName: cfg.ServiceName,
		port:        cfg.Port,
		logger:      cfg.Logger,
		archive:     cfg.Archive,
		snapshots:   cfg.Snapshots,
	}
}

// Start begins serving health endpoints.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Health server failed")
		}
	}()

	s.logger.Infof("Health server listening on :%d", s.port)
	return nil
}

// Shutdown stops the health server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	// Until the first cycle completes, subscribers would only receive an
	// empty payload; report not ready.
	if _, err := s.snapshots.Current(); err != nil {
		checks["snapshot"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["snapshot"] = "ok"
	}

	if s.archive != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.archive.Ping(ctx); err != nil {
			checks["archive"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["archive"] = "ok"
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, ReadyResponse{Status: state, Checks: checks})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
