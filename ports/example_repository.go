package ports

import (
	"context"

	"pointconfig/domain/core"
)

// ExampleRepository persists the top examples of search runs
type ExampleRepository interface {
	// Save replaces the stored examples of a run
	Save(ctx context.Context, runID core.RunID, examples []core.Example) error

	// List returns the examples of a run ordered by rank; an unknown run
	// yields ErrRunNotFound
	List(ctx context.Context, runID core.RunID) ([]core.Example, error)
}
