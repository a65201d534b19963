package geometry

import (
	"fmt"

	"pointconfig/domain/core"
)

// PointToIndex encodes a coordinate vector as its base-p index. Coordinates
// are assumed to lie in [0, p).
func PointToIndex(s Space, coords []int) int {
	return encode(s.Prime, coords)
}

// IndexToPoint decodes a point index into its n coordinates.
func IndexToPoint(s Space, index int) ([]int, error) {
	if err := CheckPointIndex(s, index); err != nil {
		return nil, err
	}
	return decode(s.Prime, s.Dimension, index), nil
}

// DirectionToIndex encodes a normalized direction. The pivot is the last
// nonzero coordinate; its value is not inspected.
func DirectionToIndex(s Space, coords []int) int {
	k := len(coords) - 1
	for i := len(coords) - 1; i >= 0; i-- {
		if mod(coords[i], s.Prime) != 0 {
			k = i
			break
		}
	}
	return DirectionOffset(s.Prime, k) + encode(s.Prime, coords[:k])
}

// IndexToDirection decodes a direction index into its normalized vector.
func IndexToDirection(s Space, index int) ([]int, error) {
	if err := CheckDirectionIndex(s, index); err != nil {
		return nil, err
	}
	k := DirectionSubdimension(s, index)
	direction := make([]int, s.Dimension)
	copy(direction, decode(s.Prime, k, index-DirectionOffset(s.Prime, k)))
	direction[k] = 1
	return direction, nil
}

// DirectionSubdimension returns the pivot position of the direction with the
// given index.
func DirectionSubdimension(s Space, index int) int {
	k := 0
	next := 1
	for next <= index {
		k++
		next = next*s.Prime + 1
	}
	return k
}

// Directions lists every normalized direction in index order.
func Directions(s Space) [][]int {
	total := s.TotalDirections()
	directions := make([][]int, total)
	for d := 0; d < total; d++ {
		k := DirectionSubdimension(s, d)
		direction := make([]int, s.Dimension)
		copy(direction, decode(s.Prime, k, d-DirectionOffset(s.Prime, k)))
		direction[k] = 1
		directions[d] = direction
	}
	return directions
}

// InterceptToIndex encodes the n-1 components of a line intercept.
func InterceptToIndex(s Space, components []int) int {
	return encode(s.Prime, components)
}

// IndexToIntercept decodes a line intercept index into its n-1 components.
func IndexToIntercept(s Space, index int) ([]int, error) {
	if index < 0 || index >= s.TotalLineIntercepts() {
		return nil, core.NewValidationError("line intercept",
			fmt.Sprintf("index %d outside [0, %d)", index, s.TotalLineIntercepts()))
	}
	return decode(s.Prime, s.Dimension-1, index), nil
}

func encode(p int, coords []int) int {
	index := 0
	for _, c := range coords {
		index = index*p + c
	}
	return index
}

func decode(p, n, index int) []int {
	coords := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		coords[i] = index % p
		index /= p
	}
	return coords
}
