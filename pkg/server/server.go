// Package server exposes face detection over HTTP.
//
// # Endpoints
//
//	POST /v1/faces                 detect faces; ?strategy= and ?format=
//	POST /v1/bounds                bounding box of the vertices
//	POST /v1/adjacent/{faceID}     adjacent faces (501, not implemented)
//	POST /v1/hittest?x=&y=         face containing a point (501, not implemented)
//	GET  /v1/capabilities          supported capability markers
//	GET  /v1/version               build information
//	GET  /healthz                  liveness probe
//
// Request bodies use the input document format:
//
//	{"vertices": [[0, 0], [2, 0], [2, 3]], "edges": [[0, 1], [1, 2], [2, 0]]}
//
// Errors are returned as {"error": {"code": "...", "message": "..."}} with a
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/planarfaces/pkg/pipeline"
)

// DefaultMaxBodyBytes limits request documents.
const DefaultMaxBodyBytes = 8 << 20

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	defOpts pipeline.Options
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithDefaults sets the pipeline options used when a request does not
// override them.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defOpts = opts }
}

// New creates a server running detections through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/capabilities", s.handleCapabilities)
		r.Get("/version", s.handleVersion)
		r.Post("/faces", s.handleFaces)
		r.Post("/bounds", s.handleBounds)
		r.Post("/adjacent/{faceID}", s.handleAdjacent)
		r.Post("/hittest", s.handleHitTest)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
