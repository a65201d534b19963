package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic runs
type RNGPort interface {
	// Stream creates a deterministic RNG stream for a named component of a run.
	// The same run, name and seed always yield the same sequence.
	Stream(ctx context.Context, runID, name string, seed int64) (*rand.Rand, error)
}
