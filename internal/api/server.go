package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fembalance/internal/adapters/config"
	"fembalance/internal/api/health"
	"fembalance/internal/metrics"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg config.ServerConfig, serviceName, version string, handler *Handler, healthHandler *health.Handler, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	post := func(h http.HandlerFunc) http.HandlerFunc {
		return logRequests(log, rateLimit(limiter, requireMethod(http.MethodPost, h)))
	}
	get := func(h http.HandlerFunc) http.HandlerFunc {
		return logRequests(log, requireMethod(http.MethodGet, h))
	}

	// Prediction endpoints
	mux.HandleFunc("/predict/next-cycle", post(handler.HandlePredictCycle))
	mux.HandleFunc("/predict/pcos-risk", post(handler.HandlePredictPCOSRisk))
	mux.HandleFunc("/analyze/symptoms", post(handler.HandleAnalyzeSymptoms))
	mux.HandleFunc("/model/info", get(handler.HandleModelInfo))
	mux.HandleFunc("/predictions/history", get(handler.HandleHistory))

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/ready", healthHandler.HandleReadiness)
	mux.HandleFunc("/live", healthHandler.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"service":"%s","version":"%s","status":"running"}`,
			serviceName, version)
	})

	log.Infof("HTTP server configured on %s", cfg.Addr())

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}
