// Package server exposes the tuner over HTTP.
//
// # Endpoints
//
//	GET    /healthz                   liveness and build version
//	POST   /v1/tune                   submit nets; 202 with a pending job
//	POST   /v1/tune?wait=true         tune before responding; 200 with the job
//	GET    /v1/jobs/{id}              job status and results
//	DELETE /v1/jobs/{id}              forget a job
//	GET    /v1/jobs/{id}/render       render one net of a finished job
//
// The tune body is either a JSON object {"nets": [...]} of tuning requests
// or, with Content-Type application/toml, a job file as read by
// [io.ReadTOML]. Render accepts the query parameters net, format, scale,
// baseline, obstacles and colors.
//
// Errors are returned as {"code": "...", "message": "..."} with the status
// given by [errors.HTTPStatus].
//
// [io.ReadTOML]: github.com/matzehuels/meander/pkg/io.ReadTOML
// [errors.HTTPStatus]: github.com/matzehuels/meander/pkg/errors.HTTPStatus
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/meander/pkg/jobstore"
	"github.com/matzehuels/meander/pkg/tuning"
)

// Config holds server settings.
type Config struct {
	// JobTTL is how long jobs are kept. Default: [jobstore.DefaultTTL].
	JobTTL time.Duration

	// JobTimeout bounds a single tuning job. Default: 5 minutes.
	JobTimeout time.Duration

	// MaxBodyBytes limits request bodies. Default: 8 MiB.
	MaxBodyBytes int64
}

func (c *Config) setDefaults() {
	if c.JobTTL <= 0 {
		c.JobTTL = jobstore.DefaultTTL
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = 5 * time.Minute
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 8 << 20
	}
}

// Server serves tuning jobs. Create with [New].
type Server struct {
	runner *tuning.Runner
	store  jobstore.Store
	logger *log.Logger
	cfg    Config
	router chi.Router

	// jobs tracks background tuning so Shutdown can wait for it.
	jobs sync.WaitGroup
}

// New creates a server backed by runner and store.
// If logger is nil, log.Default() is used.
func New(runner *tuning.Runner, store jobstore.Store, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	cfg.setDefaults()

	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tune", s.handleTune)
		r.Route("/jobs/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetJob)
			r.Delete("/", s.handleDeleteJob)
			r.Get("/render", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully and waits for running jobs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Wait()
	return nil
}

// Wait blocks until all background jobs have finished.
func (s *Server) Wait() { s.jobs.Wait() }
