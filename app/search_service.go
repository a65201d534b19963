package app

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
	"pointconfig/internal/tracking"
	"pointconfig/ports"
)

// GeneratorFactory builds the word generator of a run.
type GeneratorFactory func(length int, density float64, rng *rand.Rand) (ports.WordGenerator, error)

// RoundObserver is told the best score of every finished round.
type RoundObserver interface {
	ObserveRound(prime string, best int)
}

// SearchDeps are the collaborators of a SearchService. Examples, Observer,
// RoundObserver and Logger may be nil.
type SearchDeps struct {
	Cache         *lookup.Cache
	RNG           ports.RNGPort
	Generators    GeneratorFactory
	Examples      ports.ExampleRepository
	Observer      scoring.Observer
	RoundObserver RoundObserver
	Logger        *internal.Logger
	Workers       int
}

// SearchService runs generate, score, select and learn rounds and keeps the
// best configurations.
type SearchService struct {
	deps   SearchDeps
	logger *internal.Logger
}

// SearchRequest defines one search run
type SearchRequest struct {
	RunID      core.RunID `json:"run_id,omitempty"` // optional, generated if empty
	Prime      int        `json:"prime"`
	BatchSize  int        `json:"batch_size"`
	Rounds     int        `json:"rounds"`
	Percentile float64    `json:"percentile"`
	TopK       int        `json:"top_k"`
	Density    float64    `json:"density"` // 0 selects scoring.AutoDensity
	Seed       int64      `json:"seed"`
}

// SearchResult is the outcome of a run
type SearchResult struct {
	RunID      core.RunID              `json:"run_id"`
	Prime      int                     `json:"prime"`
	Density    float64                 `json:"density"`
	Rounds     []tracking.RoundSummary `json:"rounds"`
	Top        []core.Example          `json:"top"`
	Thresholds []scoring.Threshold     `json:"thresholds"`
	Best       int                     `json:"best"`
	RuntimeMs  int64                   `json:"runtime_ms"`
}

// NewSearchService creates a search service
func NewSearchService(deps SearchDeps) *SearchService {
	return &SearchService{deps: deps, logger: internal.OrDefault(deps.Logger)}
}

// Validate checks a request before any work is done
func (r SearchRequest) Validate() error {
	if err := geometry.CheckPrimeDim(r.Prime, scoring.Dimension); err != nil {
		return err
	}
	switch {
	case r.BatchSize <= 0:
		return core.NewValidationError("batch_size", "must be positive")
	case r.Rounds <= 0:
		return core.NewValidationError("rounds", "must be positive")
	case r.Percentile < 0 || r.Percentile >= 100:
		return core.NewValidationError("percentile", "must lie in [0,100)")
	case r.TopK < 0:
		return core.NewValidationError("top_k", "must not be negative")
	case r.Density < 0 || r.Density > 1:
		return core.NewValidationError("density", "must lie in [0,1]")
	}
	if r.RunID != "" {
		if _, err := core.ParseRunID(r.RunID.String()); err != nil {
			return err
		}
	}
	return nil
}

// Run executes a search and saves its top examples when a repository is set
func (s *SearchService) Run(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	startTime := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}

	opts := []scoring.Option{scoring.WithWorkers(s.deps.Workers), scoring.WithLogger(s.logger)}
	if s.deps.Observer != nil {
		opts = append(opts, scoring.WithObserver(s.deps.Observer))
	}
	scorer, err := scoring.NewScorer(s.deps.Cache, req.Prime, opts...)
	if err != nil {
		return nil, err
	}

	rng, err := s.deps.RNG.Stream(ctx, runID.String(), "generator", req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator stream: %w", err)
	}
	density := req.Density
	if density == 0 {
		density = scoring.AutoDensity(req.Prime)
	}
	gen, err := s.deps.Generators(scorer.WordLength(), density, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	s.logger.Info("run %s: p=%d rounds=%d batch=%d density=%.4f", runID, req.Prime, req.Rounds, req.BatchSize, density)

	top := tracking.NewTopExamples(req.TopK)
	history := tracking.NewHistory(req.Prime)
	for round := 0; round < req.Rounds; round++ {
		summary, err := s.runRound(ctx, scorer, gen, top, history, round, req)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if s.deps.RoundObserver != nil {
			s.deps.RoundObserver.ObserveRound(strconv.Itoa(req.Prime), summary.Best)
		}
		s.logger.Info("run %s round %d: best=%d mean=%.1f median=%.1f normalized=%.3f",
			runID, round, summary.Best, summary.Mean, summary.Median, summary.Normalized)
	}

	examples := top.Examples(req.Prime)
	if s.deps.Examples != nil {
		if err := s.deps.Examples.Save(ctx, runID, examples); err != nil {
			return nil, fmt.Errorf("failed to save examples: %w", err)
		}
	}

	best, _ := history.Best()
	return &SearchResult{
		RunID:      runID,
		Prime:      req.Prime,
		Density:    density,
		Rounds:     history.Rounds(),
		Top:        examples,
		Thresholds: scoring.Thresholds(req.Prime),
		Best:       best,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

func (s *SearchService) runRound(
	ctx context.Context,
	scorer *scoring.Scorer,
	gen ports.WordGenerator,
	top *tracking.TopExamples,
	history *tracking.History,
	round int,
	req SearchRequest,
) (tracking.RoundSummary, error) {
	words, err := gen.Generate(ctx, req.BatchSize)
	if err != nil {
		return tracking.RoundSummary{}, fmt.Errorf("failed to generate words: %w", err)
	}
	scores, err := scorer.ScoreWords(ctx, words)
	if err != nil {
		return tracking.RoundSummary{}, fmt.Errorf("failed to score words: %w", err)
	}

	selected := tracking.SelectTopPercentile(scores, req.Percentile)
	elite := make([]scoring.Word, len(selected))
	eliteScores := make([]int, len(selected))
	for i, idx := range selected {
		elite[i] = words[idx].Clone()
		eliteScores[i] = scores[idx]
		top.Offer(scores[idx], words[idx].String())
	}
	if cutoff, err := tracking.PercentileCutoff(scores, req.Percentile); err == nil {
		s.logger.Debug("round %d: kept %d of %d words, p%.0f score %.1f",
			round, len(selected), len(scores), req.Percentile, cutoff)
	}

	if err := gen.Observe(ctx, elite); err != nil {
		return tracking.RoundSummary{}, fmt.Errorf("failed to update generator: %w", err)
	}
	return history.Record(round, eliteScores)
}
