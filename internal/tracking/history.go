package tracking

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"pointconfig/internal/scoring"
)

// RoundSummary condenses the elite scores of one round.
type RoundSummary struct {
	Round      int     `json:"round" yaml:"round"`
	Count      int     `json:"count" yaml:"count"`
	Best       int     `json:"best" yaml:"best"`
	Mean       float64 `json:"mean" yaml:"mean"`
	StdDev     float64 `json:"std_dev" yaml:"std_dev"`
	Median     float64 `json:"median" yaml:"median"`
	Normalized float64 `json:"normalized" yaml:"normalized"`
}

// RoundScore is one score tagged with the round that produced it.
type RoundScore struct {
	Round int `json:"round"`
	Score int `json:"score"`
}

// History accumulates round summaries and every recorded score.
type History struct {
	prime  int
	rounds []RoundSummary
	scores []RoundScore
}

// NewHistory creates an empty history for prime p.
func NewHistory(prime int) *History {
	return &History{prime: prime}
}

// Record summarizes scores as round and appends them to the history.
func (h *History) Record(round int, scores []int) (RoundSummary, error) {
	if len(scores) == 0 {
		return RoundSummary{}, fmt.Errorf("round %d has no scores", round)
	}

	data := make([]float64, len(scores))
	best := scores[0]
	for i, s := range scores {
		data[i] = float64(s)
		best = max(best, s)
	}
	mean, std := stat.MeanStdDev(data, nil)
	if math.IsNaN(std) {
		std = 0
	}
	median, err := stats.Median(data)
	if err != nil {
		return RoundSummary{}, fmt.Errorf("median of round %d: %w", round, err)
	}

	summary := RoundSummary{
		Round:      round,
		Count:      len(scores),
		Best:       best,
		Mean:       mean,
		StdDev:     std,
		Median:     median,
		Normalized: scoring.NormalizedScore(h.prime, best),
	}
	h.rounds = append(h.rounds, summary)
	for _, s := range scores {
		h.scores = append(h.scores, RoundScore{Round: round, Score: s})
	}
	return summary, nil
}

// Rounds returns a copy of the recorded summaries.
func (h *History) Rounds() []RoundSummary {
	return append([]RoundSummary(nil), h.rounds...)
}

// Scores returns a copy of every recorded score.
func (h *History) Scores() []RoundScore {
	return append([]RoundScore(nil), h.scores...)
}

// Best returns the highest score recorded so far.
func (h *History) Best() (int, bool) {
	if len(h.rounds) == 0 {
		return 0, false
	}
	best := h.rounds[0].Best
	for _, r := range h.rounds[1:] {
		best = max(best, r.Best)
	}
	return best, true
}

// SelectTopPercentile returns the indices of the ceil((1-percentile/100)*N)
// highest scores, best first. Ties keep input order.
func SelectTopPercentile(scores []int, percentile float64) []int {
	if len(scores) == 0 {
		return nil
	}
	keep := int(math.Ceil((1 - percentile/100) * float64(len(scores))))
	keep = max(1, min(keep, len(scores)))

	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})
	return indices[:keep]
}

// PercentileCutoff returns the score at the given percentile of scores.
func PercentileCutoff(scores []int, percentile float64) (float64, error) {
	data := stats.LoadRawData(scores)
	if percentile <= 0 {
		return data.Min()
	}
	return data.Percentile(percentile)
}
