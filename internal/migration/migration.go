package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pointconfig/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order; every step is idempotent
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createTopExamplesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create top_examples table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createTopExamplesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS top_examples (
			run_id TEXT NOT NULL,
			rank INTEGER NOT NULL,
			prime INTEGER NOT NULL,
			score INTEGER NOT NULL,
			subset TEXT NOT NULL,
			subset_hash VARCHAR(64) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, rank)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_top_examples_prime_score ON top_examples (prime, score DESC);
		CREATE INDEX IF NOT EXISTS idx_top_examples_subset_hash ON top_examples (subset_hash)
	`)
	return err
}

var _ Migrator = (*MigrationRunner)(nil)
