// Package generator provides a seeded word generator that samples each word
// position independently and shifts its probabilities toward elite words.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"pointconfig/internal/scoring"
	"pointconfig/ports"
)

const (
	// DefaultLearningRate is the weight given to the elite frequencies on Observe
	DefaultLearningRate = 0.2

	minProbability = 0.001
	maxProbability = 0.999
)

// Bernoulli samples words position by position. It is safe for concurrent use.
type Bernoulli struct {
	mu           sync.Mutex
	rng          *rand.Rand
	probs        []float64
	learningRate float64
}

// NewBernoulli creates a generator of words of the given length where every
// position starts with probability density.
func NewBernoulli(length int, density float64, rng *rand.Rand) (*Bernoulli, error) {
	if length <= 0 {
		return nil, fmt.Errorf("word length must be positive, got %d", length)
	}
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density must lie in [0,1], got %g", density)
	}
	probs := make([]float64, length)
	for i := range probs {
		probs[i] = density
	}
	return &Bernoulli{rng: rng, probs: probs, learningRate: DefaultLearningRate}, nil
}

// NewBernoulliGenerator adapts NewBernoulli to a ports.WordGenerator factory.
func NewBernoulliGenerator(length int, density float64, rng *rand.Rand) (ports.WordGenerator, error) {
	b, err := NewBernoulli(length, density, rng)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetLearningRate changes the weight given to elite frequencies.
func (b *Bernoulli) SetLearningRate(rate float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.learningRate = rate
}

// Generate draws n words.
func (b *Bernoulli) Generate(ctx context.Context, n int) ([]scoring.Word, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	words := make([]scoring.Word, n)
	for i := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		word := make(scoring.Word, len(b.probs))
		for j, p := range b.probs {
			if b.rng.Float64() < p {
				word[j] = 1
			}
		}
		words[i] = word
	}
	return words, nil
}

// Observe moves every position's probability toward its frequency among the
// elite words.
func (b *Bernoulli) Observe(ctx context.Context, elite []scoring.Word) error {
	if len(elite) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	freq := make([]float64, len(b.probs))
	for _, word := range elite {
		if len(word) != len(b.probs) {
			return fmt.Errorf("elite word has length %d, generator produces %d", len(word), len(b.probs))
		}
		for j, bit := range word {
			freq[j] += float64(bit)
		}
	}
	for j := range b.probs {
		f := freq[j] / float64(len(elite))
		p := (1-b.learningRate)*b.probs[j] + b.learningRate*f
		b.probs[j] = min(maxProbability, max(minProbability, p))
	}
	return ctx.Err()
}

// Probabilities returns a copy of the current per-position probabilities.
func (b *Bernoulli) Probabilities() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]float64(nil), b.probs...)
}

var _ ports.WordGenerator = (*Bernoulli)(nil)
