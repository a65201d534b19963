package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/internal/scoring"
)

func TestTopExamplesKeepsHighest(t *testing.T) {
	top := NewTopExamples(3)

	assert.True(t, top.Offer(5, "a"))
	assert.True(t, top.Offer(1, "b"))
	assert.True(t, top.Offer(3, "c"))
	assert.Equal(t, 3, top.Len())

	// equal to the minimum: rejected
	assert.False(t, top.Offer(1, "d"))
	assert.True(t, top.Offer(4, "e"))
	assert.False(t, top.Offer(2, "f"))

	low, ok := top.Min()
	require.True(t, ok)
	assert.Equal(t, 3, low)

	examples := top.Examples(11)
	require.Len(t, examples, 3)
	scores := []int{examples[0].Score, examples[1].Score, examples[2].Score}
	assert.Equal(t, []int{5, 4, 3}, scores)
	assert.Equal(t, "a", examples[0].Subset)
	for i, e := range examples {
		assert.Equal(t, i, e.Rank)
		assert.Equal(t, 11, e.Prime)
		assert.False(t, e.Hash.IsEmpty())
	}
}

func TestTopExamplesSkipsHeldSubsets(t *testing.T) {
	top := NewTopExamples(3)
	assert.True(t, top.Offer(5, "a"))
	assert.False(t, top.Offer(5, "a"))
	assert.False(t, top.Offer(9, "a"))
	assert.Equal(t, 1, top.Len())

	assert.True(t, top.Offer(6, "b"))
	assert.True(t, top.Offer(7, "c"))
	// "a" is displaced, so it may come back later
	assert.True(t, top.Offer(8, "d"))
	assert.True(t, top.Offer(9, "a"))
	assert.Equal(t, 3, top.Len())
}

func TestTopExamplesZeroCapacity(t *testing.T) {
	top := NewTopExamples(0)
	assert.False(t, top.Offer(100, "x"))
	_, ok := top.Min()
	assert.False(t, ok)
	assert.Empty(t, top.Examples(3))
}

func TestHistoryRecord(t *testing.T) {
	h := NewHistory(3)

	summary, err := h.Record(0, []int{480, 519, 500, 501})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, 519, summary.Best)
	assert.InDelta(t, 500.0, summary.Mean, 1e-9)
	assert.InDelta(t, 500.5, summary.Median, 1e-9)
	assert.Positive(t, summary.StdDev)
	assert.InDelta(t, scoring.NormalizedScore(3, 519), summary.Normalized, 1e-12)
	assert.InDelta(t, 1.0, summary.Normalized, 1e-12)

	summary, err = h.Record(1, []int{7})
	require.NoError(t, err)
	assert.Zero(t, summary.StdDev)

	_, err = h.Record(2, nil)
	assert.Error(t, err)

	assert.Len(t, h.Rounds(), 2)
	assert.Len(t, h.Scores(), 5)
	assert.Equal(t, RoundScore{Round: 1, Score: 7}, h.Scores()[4])
	best, ok := h.Best()
	require.True(t, ok)
	assert.Equal(t, 519, best)
}

func TestSelectTopPercentile(t *testing.T) {
	tests := []struct {
		name       string
		scores     []int
		percentile float64
		want       []int
	}{
		{"top ten percent", []int{1, 9, 3, 7, 5, 2, 8, 4, 6, 0}, 90, []int{1}},
		{"top half", []int{1, 9, 3, 7, 5, 2, 8, 4, 6, 0}, 50, []int{1, 6, 3, 8, 4}},
		{"rounds up", []int{4, 2, 3}, 90, []int{0}},
		{"ties keep order", []int{2, 5, 5, 1}, 50, []int{1, 2}},
		{"everything", []int{2, 1}, 0, []int{0, 1}},
		{"empty", nil, 90, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTopPercentile(tt.scores, tt.percentile))
		})
	}
}

func TestPercentileCutoff(t *testing.T) {
	scores := []int{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}

	low, err := PercentileCutoff(scores, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, low)

	mid, err := PercentileCutoff(scores, 50)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mid, 5.0)
	assert.LessOrEqual(t, mid, 6.0)

	_, err = PercentileCutoff(nil, 50)
	assert.Error(t, err)
}
