package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"pointconfig/domain/core"
	"pointconfig/internal/errors"
	"pointconfig/ports"
)

// ExampleRepositoryImpl implements ExampleRepository for PostgreSQL
type ExampleRepositoryImpl struct {
	db *sqlx.DB
}

// NewExampleRepository creates a new PostgreSQL example repository
func NewExampleRepository(db *sqlx.DB) *ExampleRepositoryImpl {
	return &ExampleRepositoryImpl{db: db}
}

// Save replaces the stored examples of a run inside one transaction
func (r *ExampleRepositoryImpl) Save(ctx context.Context, runID core.RunID, examples []core.Example) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.DatabaseError(err.Error()), "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM top_examples WHERE run_id = $1`, runID); err != nil {
		return errors.Wrap(errors.DatabaseError(err.Error()), "failed to clear run examples")
	}

	now := time.Now().UTC()
	for _, e := range examples {
		e.RunID = runID
		if e.Hash.IsEmpty() {
			e.Hash = core.NewHash([]byte(e.Subset))
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO top_examples (run_id, rank, prime, score, subset, subset_hash, created_at)
			VALUES (:run_id, :rank, :prime, :score, :subset, :subset_hash, :created_at)`, e)
		if err != nil {
			return errors.Wrapf(errors.DatabaseError(err.Error()), "failed to insert example %d", e.Rank)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.DatabaseError(err.Error()), "failed to commit examples")
	}
	return nil
}

// List returns the examples of a run ordered by rank
func (r *ExampleRepositoryImpl) List(ctx context.Context, runID core.RunID) ([]core.Example, error) {
	var examples []core.Example
	err := r.db.SelectContext(ctx, &examples, `
		SELECT run_id, rank, prime, score, subset, subset_hash, created_at
		FROM top_examples
		WHERE run_id = $1
		ORDER BY rank`, runID)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to list examples")
	}
	if len(examples) == 0 {
		return nil, core.NewNotFoundError("run", runID.String())
	}
	return examples, nil
}

// Best returns the highest scoring examples stored for a prime across runs
func (r *ExampleRepositoryImpl) Best(ctx context.Context, prime, limit int) ([]core.Example, error) {
	if limit <= 0 {
		limit = 20
	}
	var examples []core.Example
	err := r.db.SelectContext(ctx, &examples, `
		SELECT run_id, rank, prime, score, subset, subset_hash, created_at
		FROM top_examples
		WHERE prime = $1
		ORDER BY score DESC, created_at
		LIMIT $2`, prime, limit)
	if err != nil {
		return nil, errors.Wrap(errors.DatabaseError(err.Error()), "failed to list best examples")
	}
	return examples, nil
}

var _ ports.ExampleRepository = (*ExampleRepositoryImpl)(nil)
