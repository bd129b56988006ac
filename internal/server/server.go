package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/config"
	"github.com/sozercan/listing-lens/internal/metrics"
	"github.com/sozercan/listing-lens/internal/views"
)

const (
	// Extra time on top of the analysis timeout before chi gives up on a request.
	handlerSlack = 10 * time.Second

	sweepInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

type Server struct {
	cfg      config.Config
	router   *chi.Mux
	analyzer *analyzer.Analyzer
	views    *views.Store
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	pages    *template.Template
}

// New wires the HTTP surface. reg receives the server's collectors and is
// exposed on /metrics.
func New(cfg config.Config, a *analyzer.Analyzer, m *metrics.Metrics, reg *prometheus.Registry) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		analyzer: a,
		views:    views.NewStore(a, cfg.Views.TTL, cfg.Views.Max, views.WithMetrics(m)),
		metrics:  m,
		gatherer: reg,
		pages:    pages,
	}

	s.setupRoutes()
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Views exposes the view store.
func (s *Server) Views() *views.Store {
	return s.views
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Analysis.Timeout + handlerSlack))

	s.router.Get("/", s.handleIndex)
	s.router.Post("/analyze", s.handleSubmit)
	s.router.Get("/views/{id}", s.handleView)
	s.router.Handle("/static/*", staticHandler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/health", s.handleHealth)
	})

	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Capture the status code for the log line
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		status := rw.status
		if status == 0 {
			status = http.StatusOK
		}

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveHTTP(r.Method, route, status)

		slog.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.views.Run(sweepCtx, sweepInterval)

	// Create a channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "address", srv.Addr, "analysis_endpoint", s.cfg.Analysis.BaseURL)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		slog.Info("Starting shutdown", "cause", context.Cause(ctx))

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
