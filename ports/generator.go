package ports

import (
	"context"

	"pointconfig/internal/scoring"
)

// WordGenerator proposes candidate configurations and learns from the best
// of them.
type WordGenerator interface {
	// Generate returns n words of the generator's word length
	Generate(ctx context.Context, n int) ([]scoring.Word, error)

	// Observe feeds back the elite words of a round
	Observe(ctx context.Context, elite []scoring.Word) error
}
