// Package api serves the scoring engine over HTTP.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pointconfig/app"
	"pointconfig/internal"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
	"pointconfig/ports"
)

// DefaultMaxPrime bounds the primes a request may ask for; each new prime
// builds a lookup table of p^3 * (p^2+p+1) cells.
const DefaultMaxPrime = 13

// Deps are the collaborators of a Server. Examples, Observer and Gatherer
// may be nil.
type Deps struct {
	Cache    *lookup.Cache
	Examples ports.ExampleRepository
	Observer scoring.Observer
	Gatherer prometheus.Gatherer
	Logger   *internal.Logger
	Workers  int
	MaxPrime int
}

// Server routes scoring requests to per-prime scorers.
type Server struct {
	router   *chi.Mux
	deps     Deps
	logger   *internal.Logger
	validate *validator.Validate
	examine  *app.ExamineService

	mu      sync.Mutex
	scorers map[int]*scoring.Scorer
}

// NewServer creates the server and registers its routes.
func NewServer(deps Deps) *Server {
	if deps.MaxPrime <= 0 {
		deps.MaxPrime = DefaultMaxPrime
	}
	s := &Server{
		router:   chi.NewRouter(),
		deps:     deps,
		logger:   internal.OrDefault(deps.Logger),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		examine:  app.NewExamineService(deps.Cache, deps.Examples),
		scorers:  make(map[int]*scoring.Scorer),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/score", s.handleScore)
	s.router.Post("/api/score/batch", s.handleScoreBatch)
	s.router.Get("/api/thresholds/{prime}", s.handleThresholds)
	s.router.Post("/api/equidistribution", s.handleEquidistribution)
	s.router.Post("/api/intercepts", s.handleIntercepts)
	s.router.Get("/api/runs/{id}/examples", s.handleRunExamples)
	s.router.Get("/api/runs/{id}/report", s.handleRunReport)

	if s.deps.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// scorer returns the shared scorer for prime, creating it on first use.
func (s *Server) scorer(prime int) (*scoring.Scorer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scorer, ok := s.scorers[prime]; ok {
		return scorer, nil
	}

	opts := []scoring.Option{scoring.WithWorkers(s.deps.Workers), scoring.WithLogger(s.logger)}
	if s.deps.Observer != nil {
		opts = append(opts, scoring.WithObserver(s.deps.Observer))
	}
	scorer, err := scoring.NewScorer(s.deps.Cache, prime, opts...)
	if err != nil {
		return nil, err
	}
	s.scorers[prime] = scorer
	return scorer, nil
}
