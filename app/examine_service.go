package app

import (
	"context"
	"sort"

	"pointconfig/domain/core"
	"pointconfig/internal/incidence"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
	"pointconfig/ports"
)

// ExampleReport describes the geometry of a stored example
type ExampleReport struct {
	Rank                      int           `json:"rank"`
	Score                     int           `json:"score"`
	Size                      int           `json:"size"`
	Stage                     scoring.Stage `json:"stage"`
	EquidistributedDirections int           `json:"equidistributed_directions"`
}

// ExamineService rescores stored examples and counts their equidistributed
// directions
type ExamineService struct {
	cache    *lookup.Cache
	examples ports.ExampleRepository
}

// NewExamineService creates an examine service; examples may be nil when
// only ExamineExamples is used
func NewExamineService(cache *lookup.Cache, examples ports.ExampleRepository) *ExamineService {
	return &ExamineService{cache: cache, examples: examples}
}

// ExamineRun loads the examples of a run and examines them
func (s *ExamineService) ExamineRun(ctx context.Context, runID core.RunID) ([]ExampleReport, error) {
	if s.examples == nil {
		return nil, core.NewNotFoundError("run", runID.String())
	}
	examples, err := s.examples.List(ctx, runID)
	if err != nil {
		return nil, err
	}
	return s.ExamineExamples(examples)
}

// ExamineExamples reports on each example. An example without a prime gets
// it from its word length.
func (s *ExamineService) ExamineExamples(examples []core.Example) ([]ExampleReport, error) {
	scorers := make(map[int]*scoring.Scorer)
	reports := make([]ExampleReport, 0, len(examples))
	for _, example := range examples {
		word, err := scoring.ParseWord(example.Subset)
		if err != nil {
			return nil, err
		}
		prime := example.Prime
		if prime == 0 {
			if prime, err = scoring.PrimeForWordLength(len(word)); err != nil {
				return nil, err
			}
		}
		scorer, ok := scorers[prime]
		if !ok {
			if scorer, err = scoring.NewScorer(s.cache, prime); err != nil {
				return nil, err
			}
			scorers[prime] = scorer
		}

		result, err := scorer.Evaluate(word)
		if err != nil {
			return nil, err
		}
		points, err := scorer.Points(word)
		if err != nil {
			return nil, err
		}
		directions, err := incidence.EquidistributedDirections(s.cache, scorer.Space(), points)
		if err != nil {
			return nil, err
		}

		reports = append(reports, ExampleReport{
			Rank:                      example.Rank,
			Score:                     result.Score,
			Size:                      len(points),
			Stage:                     result.Stage,
			EquidistributedDirections: len(directions),
		})
	}
	return reports, nil
}

// FilterReports keeps the reports whose evaluation stopped at stage
func FilterReports(reports []ExampleReport, stage scoring.Stage) []ExampleReport {
	kept := make([]ExampleReport, 0, len(reports))
	for _, r := range reports {
		if r.Stage == stage {
			kept = append(kept, r)
		}
	}
	return kept
}

// SortedEquidistributionCounts returns the equidistributed direction counts
// of the reports in ascending order
func SortedEquidistributionCounts(reports []ExampleReport) []int {
	counts := make([]int, len(reports))
	for i, r := range reports {
		counts[i] = r.EquidistributedDirections
	}
	sort.Ints(counts)
	return counts
}
