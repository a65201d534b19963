// Package scoring evaluates complete candidate configurations of AG(3,p)
// against staged size, plane, line and equidistribution criteria.
package scoring

import (
	"fmt"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal"
	"pointconfig/internal/lookup"
)

// Dimension is the only dimension the scorer works in.
const Dimension = 3

// Observer receives one call per finished evaluation.
type Observer interface {
	ObserveEvaluation(stage Stage, score int)
}

// Result is the outcome of scoring one word.
type Result struct {
	Score int   `json:"score"`
	Stage Stage `json:"stage"`
	Size  int   `json:"size"`
	// Multiple is size/p; zero when the size gate failed.
	Multiple int `json:"multiple"`
	// DeterminedDirections counts directions with a line holding two or
	// more points. Only computed once the incidence scan ran.
	DeterminedDirections int `json:"determined_directions"`
}

// Passed reports whether every gate passed.
func (r Result) Passed() bool { return r.Stage == StageDone }

// Scorer evaluates words for a fixed prime. It holds no mutable state beyond
// its shared lookup table and is safe for concurrent use.
type Scorer struct {
	space    geometry.Space
	table    *lookup.Table
	fixed    [4]int
	free     []int // point index for each word position
	workers  int
	observer Observer
	logger   *internal.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers bounds the goroutines used by ScoreWords.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithObserver reports every evaluation to o.
func WithObserver(o Observer) Option {
	return func(s *Scorer) { s.observer = o }
}

// WithLogger sets the logger used for batch summaries.
func WithLogger(l *internal.Logger) Option {
	return func(s *Scorer) { s.logger = l }
}

// NewScorer builds a scorer for AG(3,prime) on top of the cached lookup table.
func NewScorer(cache *lookup.Cache, prime int, opts ...Option) (*Scorer, error) {
	space, err := geometry.NewSpace(prime, Dimension)
	if err != nil {
		return nil, err
	}
	if prime < 3 {
		return nil, core.NewValidationError("prime", "the scorer needs an odd prime")
	}
	table, err := cache.GetOrBuild(space)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		space:   space,
		table:   table,
		fixed:   [4]int{0, 1, prime, prime * prime},
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = internal.OrDefault(s.logger)

	s.free = make([]int, 0, space.TotalPoints()-len(s.fixed))
	for x := 0; x < space.TotalPoints(); x++ {
		if !s.isFixed(x) {
			s.free = append(s.free, x)
		}
	}
	return s, nil
}

func (s *Scorer) isFixed(x int) bool {
	for _, f := range s.fixed {
		if f == x {
			return true
		}
	}
	return false
}

// Space returns AG(3,p).
func (s *Scorer) Space() geometry.Space { return s.space }

// Prime returns p.
func (s *Scorer) Prime() int { return s.space.Prime }

// WordLength is p^3 - 4.
func (s *Scorer) WordLength() int { return len(s.free) }

// FixedPoints returns the indices always included in a configuration.
func (s *Scorer) FixedPoints() []int { return append([]int(nil), s.fixed[:]...) }

// Points returns every point index of the configuration encoded by word,
// fixed points included, in ascending order.
func (s *Scorer) Points(word Word) ([]int, error) {
	if err := s.checkWord(word); err != nil {
		return nil, err
	}
	points := make([]int, 0, len(s.fixed)+word.Ones())
	for x, in := range s.materialize(word) {
		if in {
			points = append(points, x)
		}
	}
	return points, nil
}

// ScoreWord returns the score of a single word.
func (s *Scorer) ScoreWord(word Word) (int, error) {
	result, err := s.Evaluate(word)
	return result.Score, err
}

// Evaluate scores word stage by stage, stopping at the first failed gate.
func (s *Scorer) Evaluate(word Word) (Result, error) {
	if err := s.checkWord(word); err != nil {
		return Result{}, err
	}

	e := &evaluation{scorer: s, word: word}
	stage := StageSizeGate
	for stage != StageDone {
		if !e.run(stage) {
			break
		}
		stage++
	}
	e.result.Stage = stage

	if s.observer != nil {
		s.observer.ObserveEvaluation(e.result.Stage, e.result.Score)
	}
	return e.result, nil
}

func (s *Scorer) checkWord(word Word) error {
	if len(word) != len(s.free) {
		return core.NewShapeError(len(s.free), len(word))
	}
	for i, bit := range word {
		if bit > 1 {
			return core.NewValidationError("word", fmt.Sprintf("position %d holds %d, want 0 or 1", i, bit))
		}
	}
	return nil
}

func (s *Scorer) materialize(word Word) []bool {
	in := make([]bool, s.space.TotalPoints())
	for _, f := range s.fixed {
		in[f] = true
	}
	for i, bit := range word {
		if bit == 1 {
			in[s.free[i]] = true
		}
	}
	return in
}
