package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pointconfig/adapters/generator"
	"pointconfig/adapters/memory"
	"pointconfig/domain/core"
	"pointconfig/internal"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
	"pointconfig/ports"
)

// MockWordGenerator implements ports.WordGenerator for testing
type MockWordGenerator struct {
	mock.Mock
}

func (m *MockWordGenerator) Generate(ctx context.Context, n int) ([]scoring.Word, error) {
	args := m.Called(ctx, n)
	words, _ := args.Get(0).([]scoring.Word)
	return words, args.Error(1)
}

func (m *MockWordGenerator) Observe(ctx context.Context, elite []scoring.Word) error {
	args := m.Called(ctx, elite)
	return args.Error(0)
}

type roundRecorder struct {
	mu   sync.Mutex
	best []int
}

func (r *roundRecorder) ObserveRound(_ string, best int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.best = append(r.best, best)
}

func bernoulliFactory(length int, density float64, rng *rand.Rand) (ports.WordGenerator, error) {
	return generator.NewBernoulliGenerator(length, density, rng)
}

func newTestService(repo ports.ExampleRepository, factory GeneratorFactory, rounds RoundObserver) *SearchService {
	logger := internal.NewNopLogger()
	return NewSearchService(SearchDeps{
		Cache:         lookup.NewCache(logger),
		RNG:           generator.SeededRNG{},
		Generators:    factory,
		Examples:      repo,
		RoundObserver: rounds,
		Logger:        logger,
		Workers:       2,
	})
}

func TestSearchServiceRun(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewExampleRepository()
	rounds := &roundRecorder{}
	service := newTestService(repo, bernoulliFactory, rounds)

	result, err := service.Run(ctx, SearchRequest{
		Prime:      7,
		BatchSize:  40,
		Rounds:     3,
		Percentile: 75,
		TopK:       5,
		Seed:       42,
	})
	require.NoError(t, err)

	assert.False(t, result.RunID == "")
	assert.Equal(t, scoring.AutoDensity(7), result.Density)
	require.Len(t, result.Rounds, 3)
	assert.Equal(t, 10, result.Rounds[0].Count)
	assert.Len(t, result.Thresholds, 4)
	require.Len(t, result.Top, 5)
	assert.Equal(t, result.Top[0].Score, result.Best)
	for i := 1; i < len(result.Top); i++ {
		assert.GreaterOrEqual(t, result.Top[i-1].Score, result.Top[i].Score)
	}
	for _, e := range result.Top {
		assert.Len(t, e.Subset, 7*7*7-4)
		assert.Equal(t, 7, e.Prime)
	}
	assert.Len(t, rounds.best, 3)

	stored, err := repo.List(ctx, result.RunID)
	require.NoError(t, err)
	require.Len(t, stored, 5)
	assert.Equal(t, result.Top[0].Subset, stored[0].Subset)
}

func TestSearchServiceIsDeterministic(t *testing.T) {
	ctx := context.Background()
	req := SearchRequest{
		RunID:      core.RunID("0190b6a4-9b7e-7c3a-8f00-000000000007"),
		Prime:      5,
		BatchSize:  20,
		Rounds:     2,
		Percentile: 50,
		TopK:       3,
		Seed:       7,
	}

	first, err := newTestService(nil, bernoulliFactory, nil).Run(ctx, req)
	require.NoError(t, err)
	second, err := newTestService(nil, bernoulliFactory, nil).Run(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, first.Top, second.Top)
}

func TestSearchServiceFeedsEliteBack(t *testing.T) {
	length := 5*5*5 - 4
	words := make([]scoring.Word, 10)
	for i := range words {
		word, err := scoring.ParseWord(strings.Repeat("0", length-i) + strings.Repeat("1", i))
		require.NoError(t, err)
		words[i] = word
	}

	gen := &MockWordGenerator{}
	gen.On("Generate", mock.Anything, 10).Return(words, nil)
	gen.On("Observe", mock.Anything, mock.MatchedBy(func(elite []scoring.Word) bool {
		return len(elite) == 2
	})).Return(nil)

	factory := func(int, float64, *rand.Rand) (ports.WordGenerator, error) { return gen, nil }
	result, err := newTestService(nil, factory, nil).Run(context.Background(), SearchRequest{
		Prime: 5, BatchSize: 10, Rounds: 2, Percentile: 80, TopK: 4, Seed: 1,
	})
	require.NoError(t, err)

	gen.AssertNumberOfCalls(t, "Generate", 2)
	gen.AssertNumberOfCalls(t, "Observe", 2)
	assert.Len(t, result.Top, 2)
}

func TestSearchServiceGeneratorFailure(t *testing.T) {
	gen := &MockWordGenerator{}
	gen.On("Generate", mock.Anything, 10).Return(nil, errors.New("model offline"))

	factory := func(int, float64, *rand.Rand) (ports.WordGenerator, error) { return gen, nil }
	_, err := newTestService(nil, factory, nil).Run(context.Background(), SearchRequest{
		Prime: 5, BatchSize: 10, Rounds: 1, Percentile: 80, TopK: 4,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
	gen.AssertNotCalled(t, "Observe", mock.Anything, mock.Anything)
}

func TestSearchRequestValidate(t *testing.T) {
	valid := SearchRequest{Prime: 11, BatchSize: 10, Rounds: 1, Percentile: 90, TopK: 5}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SearchRequest)
	}{
		{"composite prime", func(r *SearchRequest) { r.Prime = 9 }},
		{"no batch", func(r *SearchRequest) { r.BatchSize = 0 }},
		{"no rounds", func(r *SearchRequest) { r.Rounds = 0 }},
		{"percentile 100", func(r *SearchRequest) { r.Percentile = 100 }},
		{"negative top k", func(r *SearchRequest) { r.TopK = -1 }},
		{"density above one", func(r *SearchRequest) { r.Density = 1.5 }},
		{"run id not a uuid", func(r *SearchRequest) { r.RunID = core.RunID("../escape") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.True(t, core.IsValidationError(req.Validate()))
		})
	}
}
