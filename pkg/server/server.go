// Package server is a reference view-layer collaborator for the
// sort-state controller: a small HTTP service that owns one controller
// per browser session, forwards click interactions as toggles, and
// serves the demo collection ordered by the derived keys.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tablekit/sortstate/pkg/config"
	"github.com/tablekit/sortstate/pkg/observability/logger"
	"github.com/tablekit/sortstate/pkg/observability/metrics"
)

// Server hosts the HTTP binding around per-session sort controllers.
type Server struct {
	cfg      config.Config
	log      logger.Logger
	registry *metrics.Registry
	source   DataSource
	sessions *sessionStore
}

// New creates a Server. The table configuration is validated eagerly by
// building a throwaway controller, so a bad field list or initial sort
// fails here instead of on the first request.
func New(cfg config.Config, log logger.Logger, source DataSource) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if source == nil {
		return nil, errors.New("server: data source is required")
	}
	if _, err := newSessionController(cfg.Table, log); err != nil {
		return nil, fmt.Errorf("server: invalid table configuration: %w", err)
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		registry: metrics.NewRegistry(),
		source:   source,
		sessions: newSessionStore(cfg.Table, log),
	}, nil
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.HandleFunc("/api/sort", s.handleGetSort).Methods(http.MethodGet)
	r.HandleFunc("/api/sort", s.handleReplaceSort).Methods(http.MethodPut)
	r.HandleFunc("/api/sort", s.handleResetSort).Methods(http.MethodDelete)
	r.HandleFunc("/api/sort/{field}/toggle", s.handleToggle).Methods(http.MethodPost)
	r.HandleFunc("/api/items", s.handleItems).Methods(http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.registry.Handler()).Methods(http.MethodGet)
	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
// within the configured write timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", srv.Addr, "service", s.cfg.Service.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.WriteTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}
