package geometry

import (
	"fmt"
	"math/big"

	"pointconfig/domain/core"
)

// IsPrime reports whether n is prime. Exact for every int64.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(int64(n)).ProbablyPrime(0)
}

// MaxSpaceCells bounds p^n * totalDirections, the number of (point,
// direction) cells a lookup table for the space holds.
const MaxSpaceCells = 1 << 30

// CheckPrimeDim validates the parameters of a space, including that its
// lookup table stays within MaxSpaceCells.
func CheckPrimeDim(prime, dimension int) error {
	if prime <= 0 {
		return core.NewValidationError("prime", fmt.Sprintf("%d is not positive", prime))
	}
	if !IsPrime(prime) {
		return core.NewValidationError("prime", fmt.Sprintf("%d is not prime", prime))
	}
	if dimension <= 0 {
		return core.NewValidationError("dimension", fmt.Sprintf("%d is not positive", dimension))
	}
	if !fitsCells(prime, dimension) {
		return core.NewValidationError("dimension",
			fmt.Sprintf("AG(%d,%d) exceeds %d table cells", dimension, prime, MaxSpaceCells))
	}
	return nil
}

// fitsCells checks p^n * (p^n - 1)/(p - 1) <= MaxSpaceCells without overflow.
func fitsCells(prime, dimension int) bool {
	points := 1
	for i := 0; i < dimension; i++ {
		if points > MaxSpaceCells/prime {
			return false
		}
		points *= prime
	}
	directions := (points - 1) / (prime - 1)
	return directions <= MaxSpaceCells/points
}

// CheckPrimeDimPointDir validates a point and a direction against a space and
// returns both reduced into [0, p). The direction must be nonzero mod p.
func CheckPrimeDimPointDir(prime, dimension int, point, direction []int) ([]int, []int, error) {
	if err := CheckPrimeDim(prime, dimension); err != nil {
		return nil, nil, err
	}
	if len(point) != dimension {
		return nil, nil, core.NewValidationError("point",
			fmt.Sprintf("has %d coordinates, dimension is %d", len(point), dimension))
	}
	if len(direction) != dimension {
		return nil, nil, core.NewValidationError("direction",
			fmt.Sprintf("has %d coordinates, dimension is %d", len(direction), dimension))
	}
	if pivot(prime, direction) < 0 {
		return nil, nil, core.NewValidationError("direction", fmt.Sprintf("%v is zero mod %d", direction, prime))
	}
	return reduce(prime, point), reduce(prime, direction), nil
}

// CheckPointIndex validates a point index against a space.
func CheckPointIndex(s Space, index int) error {
	if index < 0 || index >= s.TotalPoints() {
		return core.NewValidationError("point",
			fmt.Sprintf("index %d outside [0, %d)", index, s.TotalPoints()))
	}
	return nil
}

// CheckDirectionIndex validates a direction index against a space.
func CheckDirectionIndex(s Space, index int) error {
	if index < 0 || index >= s.TotalDirections() {
		return core.NewValidationError("direction",
			fmt.Sprintf("index %d outside [0, %d)", index, s.TotalDirections()))
	}
	return nil
}

// CheckCoordinates validates a coordinate vector against a space without
// reducing it.
func CheckCoordinates(s Space, coords []int) error {
	if len(coords) != s.Dimension {
		return core.NewValidationError("point",
			fmt.Sprintf("has %d coordinates, dimension is %d", len(coords), s.Dimension))
	}
	for i, c := range coords {
		if c < 0 || c >= s.Prime {
			return core.NewValidationError("point",
				fmt.Sprintf("coordinate %d = %d outside [0, %d)", i, c, s.Prime))
		}
	}
	return nil
}

func reduce(p int, coords []int) []int {
	reduced := make([]int, len(coords))
	for i, c := range coords {
		reduced[i] = mod(c, p)
	}
	return reduced
}
