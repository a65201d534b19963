package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/internal/scoring"
)

func TestSeededRNGIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := SeededRNG{}.Stream(ctx, "run-1", "generator", 42)
	require.NoError(t, err)
	b, err := SeededRNG{}.Stream(ctx, "run-1", "generator", 42)
	require.NoError(t, err)
	c, err := SeededRNG{}.Stream(ctx, "run-2", "generator", 42)
	require.NoError(t, err)

	x, y, z := a.Int63(), b.Int63(), c.Int63()
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = SeededRNG{}.Stream(canceled, "run-1", "generator", 42)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBernoulliGenerate(t *testing.T) {
	gen, err := NewBernoulli(200, 0.25, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	words, err := gen.Generate(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, words, 50)

	ones := 0
	for _, w := range words {
		require.Len(t, w, 200)
		ones += w.Ones()
	}
	// 10000 draws at 0.25
	assert.InDelta(t, 2500, ones, 250)
}

func TestBernoulliExtremes(t *testing.T) {
	gen, err := NewBernoulli(10, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	words, err := gen.Generate(context.Background(), 3)
	require.NoError(t, err)
	for _, w := range words {
		assert.Zero(t, w.Ones())
	}

	_, err = NewBernoulli(0, 0.5, nil)
	assert.Error(t, err)
	_, err = NewBernoulli(5, 1.5, nil)
	assert.Error(t, err)
}

func TestBernoulliObserveMovesTowardElite(t *testing.T) {
	gen, err := NewBernoulli(4, 0.5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	gen.SetLearningRate(0.5)

	elite := []scoring.Word{{1, 0, 1, 0}, {1, 0, 0, 0}}
	require.NoError(t, gen.Observe(context.Background(), elite))

	probs := gen.Probabilities()
	assert.InDelta(t, 0.75, probs[0], 1e-12)
	assert.InDelta(t, 0.25, probs[1], 1e-12)
	assert.InDelta(t, 0.5, probs[2], 1e-12)
	assert.InDelta(t, 0.25, probs[3], 1e-12)

	for i := 0; i < 100; i++ {
		require.NoError(t, gen.Observe(context.Background(), elite))
	}
	probs = gen.Probabilities()
	assert.Equal(t, maxProbability, probs[0])
	assert.Equal(t, minProbability, probs[1])

	assert.Error(t, gen.Observe(context.Background(), []scoring.Word{{1}}))
	assert.NoError(t, gen.Observe(context.Background(), nil))
}
