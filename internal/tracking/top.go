// Package tracking keeps the best configurations and per-round score
// statistics of a search.
package tracking

import (
	"container/heap"
	"sort"

	"pointconfig/domain/core"
)

type scored struct {
	score  int
	subset string
}

func (a scored) less(b scored) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.subset < b.subset
}

// minHeap orders by score, then subset text.
type minHeap []scored

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(scored)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopExamples keeps the k highest scoring (score, subset) pairs. Once full,
// a new pair displaces the current minimum only if its score is strictly
// greater. A subset already held is not added twice.
type TopExamples struct {
	capacity int
	h        minHeap
	held     map[string]struct{}
}

// NewTopExamples creates an empty tracker holding at most k pairs.
func NewTopExamples(k int) *TopExamples {
	if k < 0 {
		k = 0
	}
	return &TopExamples{capacity: k, h: make(minHeap, 0, k), held: make(map[string]struct{}, k)}
}

// Offer adds the pair when it qualifies and reports whether it was kept.
func (t *TopExamples) Offer(score int, subset string) bool {
	if t.capacity == 0 {
		return false
	}
	if _, ok := t.held[subset]; ok {
		return false
	}
	entry := scored{score: score, subset: subset}
	if len(t.h) < t.capacity {
		heap.Push(&t.h, entry)
		t.held[subset] = struct{}{}
		return true
	}
	if score <= t.h[0].score {
		return false
	}
	delete(t.held, t.h[0].subset)
	t.h[0] = entry
	heap.Fix(&t.h, 0)
	t.held[subset] = struct{}{}
	return true
}

// Len returns the number of pairs held.
func (t *TopExamples) Len() int { return len(t.h) }

// Min returns the lowest score held.
func (t *TopExamples) Min() (int, bool) {
	if len(t.h) == 0 {
		return 0, false
	}
	return t.h[0].score, true
}

// Examples returns the held pairs as examples for prime, best first, ranked
// from 0.
func (t *TopExamples) Examples(prime int) []core.Example {
	entries := append(minHeap(nil), t.h...)
	sort.Slice(entries, func(i, j int) bool { return entries[j].less(entries[i]) })

	examples := make([]core.Example, len(entries))
	for i, e := range entries {
		examples[i] = core.NewExample(prime, e.score, e.subset)
		examples[i].Rank = i
	}
	return examples
}
