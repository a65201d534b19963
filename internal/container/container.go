package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pointconfig/adapters/api"
	"pointconfig/adapters/generator"
	"pointconfig/adapters/jsonfile"
	"pointconfig/adapters/memory"
	"pointconfig/adapters/postgres"
	"pointconfig/app"
	"pointconfig/internal"
	"pointconfig/internal/config"
	"pointconfig/internal/errors"
	"pointconfig/internal/lookup"
	"pointconfig/internal/metrics"
	"pointconfig/internal/migration"
	"pointconfig/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB       *sqlx.DB
	Cache    *lookup.Cache
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Repositories (data access layer)
	Examples ports.ExampleRepository

	// Services
	Search  *app.SearchService
	Examine *app.ExamineService
}

// New creates a new dependency injection container. Examples go to Postgres
// when a database URL is configured, to JSON files when an examples path is
// set, and to memory otherwise.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:   cfg,
		Logger:   internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
		Registry: prometheus.NewRegistry(),
	}
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = metrics.New(c.Registry)
	c.Cache = lookup.NewCache(c.Logger)

	if err := c.initRepositories(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	c.initServices()
	return c, nil
}

func (c *Container) initRepositories(ctx context.Context) error {
	switch {
	case c.Config.Database.URL != "":
		db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
		if err != nil {
			return errors.Wrap(errors.DatabaseError(err.Error()), "failed to connect to database")
		}
		if err := migration.NewRunner().Run(ctx, db); err != nil {
			db.Close()
			return errors.Wrap(err, "database migration failed")
		}
		c.DB = db
		c.Examples = postgres.NewExampleRepository(db)
		c.Logger.Info("storing examples in postgres")
	case c.Config.Storage.ExamplesPath != "":
		repo, err := jsonfile.NewExampleRepository(c.Config.Storage.ExamplesPath)
		if err != nil {
			return err
		}
		c.Examples = repo
		c.Logger.Info("storing examples under %s", c.Config.Storage.ExamplesPath)
	default:
		c.Examples = memory.NewExampleRepository()
		c.Logger.Debug("storing examples in memory")
	}
	return nil
}

func (c *Container) initServices() {
	c.Search = app.NewSearchService(app.SearchDeps{
		Cache:         c.Cache,
		RNG:           generator.SeededRNG{},
		Generators:    generator.NewBernoulliGenerator,
		Examples:      c.Examples,
		Observer:      c.Metrics,
		RoundObserver: c.Metrics,
		Logger:        c.Logger,
		Workers:       c.Config.Search.Workers,
	})
	c.Examine = app.NewExamineService(c.Cache, c.Examples)
}

// SearchRequest builds a search request from the configured defaults
func (c *Container) SearchRequest() app.SearchRequest {
	s := c.Config.Search
	return app.SearchRequest{
		Prime:      c.Config.Geometry.Prime,
		BatchSize:  s.BatchSize,
		Rounds:     s.Rounds,
		Percentile: s.Percentile,
		TopK:       s.TopK,
		Density:    s.Density,
		Seed:       s.Seed,
	}
}

// APIServer builds the HTTP server over the container's dependencies
func (c *Container) APIServer() *api.Server {
	return api.NewServer(api.Deps{
		Cache:    c.Cache,
		Examples: c.Examples,
		Observer: c.Metrics,
		Gatherer: c.Registry,
		Logger:   c.Logger,
		Workers:  c.Config.Search.Workers,
	})
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Sync()

	// Close database connection
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
