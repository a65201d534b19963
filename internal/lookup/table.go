// Package lookup precomputes, for every (point, direction) pair of a space,
// the hyperplane intercept and the line intercept, and shares one immutable
// table per space through an explicit Cache.
package lookup

import (
	"fmt"

	"pointconfig/domain/geometry"
)

// Table is a dense [point][direction] array of intercepts. It is immutable
// once built and safe for concurrent reads.
type Table struct {
	space      geometry.Space
	directions int
	planes     []uint16
	lines      []uint32
}

// Build computes the table for a space. It visits every (point, direction)
// pair once.
func Build(space geometry.Space) (*Table, error) {
	if err := geometry.CheckPrimeDim(space.Prime, space.Dimension); err != nil {
		return nil, err
	}
	if space.Prime > 1<<16 {
		return nil, fmt.Errorf("prime %d does not fit a plane intercept cell", space.Prime)
	}
	points := space.TotalPoints()
	directions := space.TotalDirections()
	t := &Table{
		space:      space,
		directions: directions,
		planes:     make([]uint16, points*directions),
		lines:      make([]uint32, points*directions),
	}
	for x := 0; x < points; x++ {
		row := x * directions
		for d := 0; d < directions; d++ {
			t.planes[row+d] = uint16(geometry.PlaneInterceptByIndex(space, x, d))
			t.lines[row+d] = uint32(geometry.LineInterceptByIndex(space, x, d))
		}
	}
	return t, nil
}

// Space returns the space the table was built for.
func (t *Table) Space() geometry.Space {
	return t.space
}

// Plane returns the hyperplane intercept of point under direction.
func (t *Table) Plane(point, direction int) int {
	return int(t.planes[point*t.directions+direction])
}

// Line returns the line intercept index of point under direction.
func (t *Table) Line(point, direction int) int {
	return int(t.lines[point*t.directions+direction])
}

// PlaneRow returns the plane intercepts of point for every direction. The
// returned slice aliases the table and must not be modified.
func (t *Table) PlaneRow(point int) []uint16 {
	start := point * t.directions
	return t.planes[start : start+t.directions : start+t.directions]
}

// LineRow returns the line intercepts of point for every direction. The
// returned slice aliases the table and must not be modified.
func (t *Table) LineRow(point int) []uint32 {
	start := point * t.directions
	return t.lines[start : start+t.directions : start+t.directions]
}

// Cells returns the number of (point, direction) entries.
func (t *Table) Cells() int {
	return len(t.planes)
}
