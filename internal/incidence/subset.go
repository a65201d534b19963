// Package incidence tracks a mutable subset of the points of AG(n,p) together
// with its hyperplane and line incidence counts for every direction.
package incidence

import (
	"sort"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal/lookup"
)

// Pair is an unordered pair of point indices stored with A < B.
type Pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

func pairOf(x, y int) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Subset holds a point set S and, for every direction d, the number of
// points of S on each hyperplane and each line of d's parallel classes. It
// also records which pairs of points are collinear under each direction and,
// per point, the directions along which it shares a line with another point.
//
// A Subset is not safe for concurrent mutation. Distinct Subsets may share a
// lookup table and be used from different goroutines.
type Subset struct {
	space geometry.Space
	table *lookup.Table

	directions      int
	planeIntercepts int
	lineIntercepts  int

	points         map[int]struct{}
	planeIncidence []int // [direction*planeIntercepts + intercept]
	lineIncidence  []int // [direction*lineIntercepts + intercept]

	// lineMembers lists the points on each occupied line, keyed like lineIncidence.
	lineMembers        map[int][]int
	pairsPerDirection  map[int]map[Pair]struct{}
	directionsPerPoint map[int]map[int]struct{}
}

// New creates an empty subset of space, fetching the shared lookup table
// from cache.
func New(cache *lookup.Cache, space geometry.Space) (*Subset, error) {
	table, err := cache.GetOrBuild(space)
	if err != nil {
		return nil, err
	}
	return NewWithTable(table), nil
}

// NewWithTable creates an empty subset over an already built table.
func NewWithTable(table *lookup.Table) *Subset {
	space := table.Space()
	s := &Subset{
		space:           space,
		table:           table,
		directions:      space.TotalDirections(),
		planeIntercepts: space.TotalPlaneIntercepts(),
		lineIntercepts:  space.TotalLineIntercepts(),
	}
	s.planeIncidence = make([]int, s.directions*s.planeIntercepts)
	s.lineIncidence = make([]int, s.directions*s.lineIntercepts)
	s.points = make(map[int]struct{})
	s.lineMembers = make(map[int][]int)
	s.pairsPerDirection = make(map[int]map[Pair]struct{})
	s.directionsPerPoint = make(map[int]map[int]struct{})
	return s
}

// AddPoint inserts x. It fails without changing anything if x is out of
// range or already present.
func (s *Subset) AddPoint(x int) error {
	if err := geometry.CheckPointIndex(s.space, x); err != nil {
		return err
	}
	if _, ok := s.points[x]; ok {
		return core.NewDuplicatePointError(x)
	}

	s.points[x] = struct{}{}
	planes := s.table.PlaneRow(x)
	lines := s.table.LineRow(x)
	for d := 0; d < s.directions; d++ {
		s.planeIncidence[d*s.planeIntercepts+int(planes[d])]++

		key := d*s.lineIntercepts + int(lines[d])
		s.lineIncidence[key]++
		members := s.lineMembers[key]
		for _, y := range members {
			s.addPair(d, x, y)
		}
		s.lineMembers[key] = append(members, x)
	}
	return nil
}

// RemovePoint deletes x, undoing every update AddPoint made. It fails without
// changing anything if x is out of range or absent.
func (s *Subset) RemovePoint(x int) error {
	if err := geometry.CheckPointIndex(s.space, x); err != nil {
		return err
	}
	if _, ok := s.points[x]; !ok {
		return core.NewMissingPointError(x)
	}

	planes := s.table.PlaneRow(x)
	lines := s.table.LineRow(x)
	for d := 0; d < s.directions; d++ {
		s.planeIncidence[d*s.planeIntercepts+int(planes[d])]--

		key := d*s.lineIntercepts + int(lines[d])
		s.lineIncidence[key]--
		members := without(s.lineMembers[key], x)
		for _, y := range members {
			s.removePair(d, x, y)
		}
		switch len(members) {
		case 0:
			delete(s.lineMembers, key)
		case 1:
			// the last point left on this line has no partner under d any more
			s.dropDirection(members[0], d)
			s.lineMembers[key] = members
		default:
			s.lineMembers[key] = members
		}
	}
	delete(s.directionsPerPoint, x)
	delete(s.points, x)
	return nil
}

// AddCoords inserts the point with the given coordinates.
func (s *Subset) AddCoords(coords []int) error {
	if err := geometry.CheckCoordinates(s.space, coords); err != nil {
		return err
	}
	return s.AddPoint(geometry.PointToIndex(s.space, coords))
}

// RemoveCoords deletes the point with the given coordinates.
func (s *Subset) RemoveCoords(coords []int) error {
	if err := geometry.CheckCoordinates(s.space, coords); err != nil {
		return err
	}
	return s.RemovePoint(geometry.PointToIndex(s.space, coords))
}

func (s *Subset) addPair(d, x, y int) {
	pairs, ok := s.pairsPerDirection[d]
	if !ok {
		pairs = make(map[Pair]struct{})
		s.pairsPerDirection[d] = pairs
	}
	pairs[pairOf(x, y)] = struct{}{}
	s.addDirection(x, d)
	s.addDirection(y, d)
}

func (s *Subset) removePair(d, x, y int) {
	pairs := s.pairsPerDirection[d]
	delete(pairs, pairOf(x, y))
	if len(pairs) == 0 {
		delete(s.pairsPerDirection, d)
	}
}

func (s *Subset) addDirection(x, d int) {
	directions, ok := s.directionsPerPoint[x]
	if !ok {
		directions = make(map[int]struct{})
		s.directionsPerPoint[x] = directions
	}
	directions[d] = struct{}{}
}

func (s *Subset) dropDirection(x, d int) {
	directions := s.directionsPerPoint[x]
	delete(directions, d)
	if len(directions) == 0 {
		delete(s.directionsPerPoint, x)
	}
}

func without(members []int, x int) []int {
	for i, y := range members {
		if y == x {
			return append(members[:i:i], members[i+1:]...)
		}
	}
	return members
}

// Space returns the space the subset lives in.
func (s *Subset) Space() geometry.Space { return s.space }

// Table returns the shared lookup table backing the subset.
func (s *Subset) Table() *lookup.Table { return s.table }

// Size returns |S|.
func (s *Subset) Size() int { return len(s.points) }

// Contains reports whether x is in S.
func (s *Subset) Contains(x int) bool {
	_, ok := s.points[x]
	return ok
}

// Points returns the members of S in ascending order.
func (s *Subset) Points() []int {
	points := make([]int, 0, len(s.points))
	for x := range s.points {
		points = append(points, x)
	}
	sort.Ints(points)
	return points
}

// PlaneCount returns the number of points of S on the given hyperplane.
func (s *Subset) PlaneCount(direction, intercept int) int {
	return s.planeIncidence[direction*s.planeIntercepts+intercept]
}

// LineCount returns the number of points of S on the given line.
func (s *Subset) LineCount(direction, intercept int) int {
	return s.lineIncidence[direction*s.lineIntercepts+intercept]
}

// PlaneIncidence returns a copy of the p hyperplane counts of direction.
func (s *Subset) PlaneIncidence(direction int) []int {
	start := direction * s.planeIntercepts
	return append([]int(nil), s.planeIncidence[start:start+s.planeIntercepts]...)
}

// LineIncidence returns a copy of the p^(n-1) line counts of direction.
func (s *Subset) LineIncidence(direction int) []int {
	start := direction * s.lineIntercepts
	return append([]int(nil), s.lineIncidence[start:start+s.lineIntercepts]...)
}

// PairsPerDirection returns, for every direction with at least one collinear
// pair, the pairs sorted ascending.
func (s *Subset) PairsPerDirection() map[int][]Pair {
	result := make(map[int][]Pair, len(s.pairsPerDirection))
	for d, pairs := range s.pairsPerDirection {
		list := make([]Pair, 0, len(pairs))
		for pair := range pairs {
			list = append(list, pair)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].A != list[j].A {
				return list[i].A < list[j].A
			}
			return list[i].B < list[j].B
		})
		result[d] = list
	}
	return result
}

// DirectionsPerPoint returns, for every point sharing a line with another
// point, the sorted directions of those lines.
func (s *Subset) DirectionsPerPoint() map[int][]int {
	result := make(map[int][]int, len(s.directionsPerPoint))
	for x, directions := range s.directionsPerPoint {
		list := make([]int, 0, len(directions))
		for d := range directions {
			list = append(list, d)
		}
		sort.Ints(list)
		result[x] = list
	}
	return result
}

// DeterminedDirections returns the sorted directions along which some line
// holds two or more points of S.
func (s *Subset) DeterminedDirections() []int {
	directions := make([]int, 0, len(s.pairsPerDirection))
	for d := range s.pairsPerDirection {
		directions = append(directions, d)
	}
	sort.Ints(directions)
	return directions
}

// EquidistributedDirections returns the directions whose p hyperplanes all
// hold the same number of points of S.
func (s *Subset) EquidistributedDirections() []int {
	var directions []int
	for d := 0; d < s.directions; d++ {
		counts := s.planeIncidence[d*s.planeIntercepts : (d+1)*s.planeIntercepts]
		equal := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				equal = false
				break
			}
		}
		if equal {
			directions = append(directions, d)
		}
	}
	return directions
}
