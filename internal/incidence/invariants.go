package incidence

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal/lookup"
)

// Snapshot is a comparable copy of every structure a Subset maintains.
type Snapshot struct {
	Points             []int
	PlaneIncidence     [][]int
	LineIncidence      [][]int
	PairsPerDirection  map[int][]Pair
	DirectionsPerPoint map[int][]int
}

// Snapshot copies the current state.
func (s *Subset) Snapshot() Snapshot {
	snap := Snapshot{
		Points:             s.Points(),
		PlaneIncidence:     make([][]int, s.directions),
		LineIncidence:      make([][]int, s.directions),
		PairsPerDirection:  s.PairsPerDirection(),
		DirectionsPerPoint: s.DirectionsPerPoint(),
	}
	for d := 0; d < s.directions; d++ {
		snap.PlaneIncidence[d] = s.PlaneIncidence(d)
		snap.LineIncidence[d] = s.LineIncidence(d)
	}
	return snap
}

// CheckInvariants verifies that the count tables sum to |S| for every
// direction and that the pair and direction sets agree with the line counts.
func (s *Subset) CheckInvariants() error {
	size := len(s.points)
	for d := 0; d < s.directions; d++ {
		planeSum := 0
		for _, c := range s.planeIncidence[d*s.planeIntercepts : (d+1)*s.planeIntercepts] {
			planeSum += c
		}
		if planeSum != size {
			return fmt.Errorf("direction %d: plane counts sum to %d, subset has %d points", d, planeSum, size)
		}

		lineSum, wantPairs := 0, 0
		for _, c := range s.lineIncidence[d*s.lineIntercepts : (d+1)*s.lineIntercepts] {
			lineSum += c
			if c >= 2 {
				wantPairs += combin.Binomial(c, 2)
			}
		}
		if lineSum != size {
			return fmt.Errorf("direction %d: line counts sum to %d, subset has %d points", d, lineSum, size)
		}
		if got := len(s.pairsPerDirection[d]); got != wantPairs {
			return fmt.Errorf("direction %d: %d collinear pairs recorded, line counts imply %d", d, got, wantPairs)
		}
	}

	for d, pairs := range s.pairsPerDirection {
		for pair := range pairs {
			if s.table.Line(pair.A, d) != s.table.Line(pair.B, d) {
				return fmt.Errorf("direction %d: pair %v is not collinear", d, pair)
			}
			if !s.hasDirection(pair.A, d) || !s.hasDirection(pair.B, d) {
				return fmt.Errorf("direction %d: pair %v missing from directions per point", d, pair)
			}
		}
	}
	for x, directions := range s.directionsPerPoint {
		if !s.Contains(x) {
			return fmt.Errorf("point %d has directions but is not in the subset", x)
		}
		for d := range directions {
			if s.LineCount(d, s.table.Line(x, d)) < 2 {
				return fmt.Errorf("point %d lists direction %d but is alone on its line", x, d)
			}
		}
	}
	return nil
}

func (s *Subset) hasDirection(x, d int) bool {
	_, ok := s.directionsPerPoint[x][d]
	return ok
}

// EquidistributedDirections returns the directions of space along which the
// given points are spread evenly over the p hyperplanes.
func EquidistributedDirections(cache *lookup.Cache, space geometry.Space, points []int) ([]int, error) {
	subset, err := New(cache, space)
	if err != nil {
		return nil, err
	}
	for _, x := range points {
		if err := subset.AddPoint(x); err != nil {
			if core.IsDuplicatePointError(err) {
				continue
			}
			return nil, err
		}
	}
	return subset.EquidistributedDirections(), nil
}
