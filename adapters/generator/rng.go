package generator

import (
	"context"
	"math/rand"

	"pointconfig/ports"
)

// SeededRNG implements ports.RNGPort with math/rand sources derived from
// the run ID and stream name.
type SeededRNG struct{}

// Stream creates a deterministic RNG stream for a named component of a run
func (SeededRNG) Stream(ctx context.Context, runID, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if runID != "" {
		seed += int64(hashString(runID))
	}
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString is djb2
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}

var _ ports.RNGPort = SeededRNG{}
