package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"github.com/couchcryptid/fars-dashboard/internal/presentation"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxSelectionBody caps the POST /api/selection request body.
const maxSelectionBody = 1 << 10

// Server exposes the dashboard API and page alongside health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	upstream   sharedobs.ReadinessChecker
	dashboard  atomic.Pointer[presentation.Dashboard]
}

// NewServer creates the HTTP server. The API answers 503 until a dashboard
// is installed with SetDashboard.
func NewServer(addr string, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		metrics:  metrics,
		upstream: ready,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(s))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/dataset", s.withDashboard(s.handleDataset))
	mux.HandleFunc("GET /api/geography", s.withDashboard(s.handleGeography))
	mux.HandleFunc("GET /api/view", s.withDashboard(s.handleView))
	mux.HandleFunc("POST /api/selection", s.withDashboard(s.handleSelect))
	mux.HandleFunc("DELETE /api/selection", s.withDashboard(s.handleReset))
	mux.HandleFunc("GET /{$}", s.withDashboard(s.handlePage))

	return s
}

// SetDashboard installs the rendered dashboard and opens the API.
func (s *Server) SetDashboard(d *presentation.Dashboard) {
	s.dashboard.Store(d)
}

// CheckReadiness reports ready once the upstream checker passes and a
// dashboard is installed.
func (s *Server) CheckReadiness(ctx context.Context) error {
	if s.upstream != nil {
		if err := s.upstream.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	if s.dashboard.Load() == nil {
		return errors.New("dashboard has not been rendered yet")
	}
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type dashboardHandler func(w http.ResponseWriter, r *http.Request, d *presentation.Dashboard)

func (s *Server) withDashboard(h dashboardHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := s.dashboard.Load()
		if d == nil {
			writeError(w, http.StatusServiceUnavailable, "dataset is still loading")
			return
		}
		h(w, r, d)
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, _ *http.Request, d *presentation.Dashboard) {
	sharedobs.WriteJSON(w, http.StatusOK, d.Dataset())
}

func (s *Server) handleGeography(w http.ResponseWriter, _ *http.Request, d *presentation.Dashboard) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(d.Geography().Raw()) //nolint:errcheck // client went away
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, d *presentation.Dashboard) {
	feature := r.URL.Query().Get("feature")
	if feature == "" {
		sharedobs.WriteJSON(w, http.StatusOK, d.View())
		return
	}
	v, err := d.ViewFor(feature)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, v)
}

type selectRequest struct {
	FeatureID string `json:"featureId"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, d *presentation.Dashboard) {
	var req selectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FeatureID == "" {
		writeError(w, http.StatusBadRequest, "featureId is required")
		return
	}

	idx, err := d.Select(req.FeatureID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.metrics.SelectionChanges.WithLabelValues("select").Inc()
	s.logger.Debug("selection changed", "feature", req.FeatureID, "index", idx)
	sharedobs.WriteJSON(w, http.StatusOK, d.View())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request, d *presentation.Dashboard) {
	d.Reset()
	s.metrics.SelectionChanges.WithLabelValues("reset").Inc()
	s.logger.Debug("selection reset")
	sharedobs.WriteJSON(w, http.StatusOK, d.View())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
