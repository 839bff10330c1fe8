// Package server implements the taskmap HTTP API.
//
// Endpoints that take a task list in the request body work on that list
// alone. Endpoints under /api/cycles and /api/tasks read the configured
// task source on every request.
//
//	GET  /health
//	POST /api/analyze                    {"tasks": [...]}
//	POST /api/layout                     {"tasks": [...], "options": {...}}
//	POST /api/render?format=svg          {"tasks": [...], "options": {...}}
//	GET  /api/tasks
//	GET  /api/cycles
//	GET  /api/tasks/{id}/dependencies
//	GET  /api/tasks/{id}/highlight
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/taskmap/pkg/config"
	"github.com/matzehuels/taskmap/pkg/pipeline"
	"github.com/matzehuels/taskmap/pkg/source"
)

// maxBodySize caps request bodies.
const maxBodySize = 10 << 20

// Server serves the API over a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	source   source.Source
	logger   *log.Logger
	defaults pipeline.Options
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithSource sets the task source read by the source-backed endpoints.
func WithSource(src source.Source) Option { return func(s *Server) { s.source = src } }

// WithDefaults sets the options merged under every request's options.
func WithDefaults(opts pipeline.Options) Option { return func(s *Server) { s.defaults = opts } }

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{runner: runner, logger: logger, timeout: time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Get("/tasks", s.handleTasks)
		r.Get("/cycles", s.handleCycles)
		r.Get("/tasks/{id}/dependencies", s.handleDependencies)
		r.Get("/tasks/{id}/highlight", s.handleHighlight)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.Server) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownTimeout := cfg.ShutdownTimeout.Duration
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
