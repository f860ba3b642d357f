// Package server serves the production-ready file download endpoint, a
// JATS rendering endpoint for loaded records, health and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/jats"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// Records resolves the record of a submission in a journal.
type Records interface {
	Record(ctx context.Context, journalPath string, submissionID int) (*model.Record, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// APIKeySecret verifies HS256 bearer tokens. Empty denies every token.
	APIKeySecret string
	// TrustUserHeader accepts X-User-ID from a trusted proxy when no bearer
	// token is sent.
	TrustUserHeader bool
}

// Deps are the host collaborators the server reads through.
type Deps struct {
	Journals    host.Journals
	Roles       host.Roles
	Files       host.SubmissionFiles
	FileService host.FileService

	// Records and Generator enable the article route. Both optional.
	Records   Records
	Generator *jats.Generator

	Metrics *Metrics
	Logger  *slog.Logger
}

// Server is the HTTP server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	deps       Deps
	auth       *Authenticator
	metrics    *Metrics
	logger     *slog.Logger
	shutdown   time.Duration
}

// NewServer creates a server with all dependencies.
func NewServer(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http-server")

	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	s := &Server{
		deps:     deps,
		auth:     NewAuthenticator(cfg.APIKeySecret, cfg.TrustUserHeader, logger),
		metrics:  metrics,
		logger:   logger,
		shutdown: cfg.ShutdownTimeout,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/{journalPath}/jatsTemplate", func(r chi.Router) {
		r.Get("/download", s.downloadHandler)
		if s.deps.Records != nil && s.deps.Generator != nil {
			r.Get("/article/{submissionId}", s.articleHandler)
		}
	})

	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting at most the
// configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdown > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdown)
		defer cancel()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// notFound is the response for every download failure.
func notFound(w http.ResponseWriter) {
	http.Error(w, "not found", http.StatusNotFound)
}
