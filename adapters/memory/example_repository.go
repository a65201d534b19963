// Package memory holds in-process implementations of the repository ports.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pointconfig/domain/core"
	"pointconfig/ports"
)

// ExampleRepository keeps examples in a map keyed by run.
type ExampleRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID][]core.Example
}

// NewExampleRepository creates an empty repository
func NewExampleRepository() *ExampleRepository {
	return &ExampleRepository{runs: make(map[core.RunID][]core.Example)}
}

// Save replaces the stored examples of a run
func (r *ExampleRepository) Save(ctx context.Context, runID core.RunID, examples []core.Example) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now().UTC()
	stored := make([]core.Example, len(examples))
	for i, e := range examples {
		e.RunID = runID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		stored[i] = e
	}
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].Rank < stored[j].Rank })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[runID] = stored
	return nil
}

// List returns the examples of a run ordered by rank
func (r *ExampleRepository) List(ctx context.Context, runID core.RunID) ([]core.Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	examples, ok := r.runs[runID]
	if !ok {
		return nil, core.NewNotFoundError("run", runID.String())
	}
	return append([]core.Example(nil), examples...), nil
}

var _ ports.ExampleRepository = (*ExampleRepository)(nil)
