// Package geometry holds the index arithmetic of the finite affine space
// AG(n,p): bijections between integer indices and points, directions and
// line intercepts, and the intercept functions that partition points into
// parallel hyperplanes and parallel lines.
//
// Points are encoded positionally in base p with coordinate 0 as the most
// significant digit. Directions are equivalence classes of nonzero vectors
// under scalar multiples; each class is represented by the vector whose
// highest-order nonzero coordinate (the pivot) equals 1. Directions with
// pivot k occupy the index range [(p^k-1)/(p-1), (p^(k+1)-1)/(p-1)).
package geometry

import "fmt"

// Space identifies AG(Dimension, Prime). It is a comparable value and is
// used directly as a cache key.
type Space struct {
	Prime     int `json:"prime" yaml:"prime"`
	Dimension int `json:"dimension" yaml:"dimension"`
}

// NewSpace validates prime and dimension and returns the space.
func NewSpace(prime, dimension int) (Space, error) {
	if err := CheckPrimeDim(prime, dimension); err != nil {
		return Space{}, err
	}
	return Space{Prime: prime, Dimension: dimension}, nil
}

// TotalPoints returns p^n.
func (s Space) TotalPoints() int {
	return pow(s.Prime, s.Dimension)
}

// TotalDirections returns (p^n - 1)/(p - 1).
func (s Space) TotalDirections() int {
	return DirectionOffset(s.Prime, s.Dimension)
}

// TotalPlaneIntercepts returns p, the number of hyperplanes in each parallel class.
func (s Space) TotalPlaneIntercepts() int {
	return s.Prime
}

// TotalLineIntercepts returns p^(n-1), the number of lines in each parallel class.
func (s Space) TotalLineIntercepts() int {
	return pow(s.Prime, s.Dimension-1)
}

func (s Space) String() string {
	return fmt.Sprintf("AG(%d,%d)", s.Dimension, s.Prime)
}

// DirectionOffset returns (p^k - 1)/(p - 1), the index of the first direction
// whose pivot sits at coordinate k.
func DirectionOffset(prime, k int) int {
	return (pow(prime, k) - 1) / (prime - 1)
}

func pow(base, exp int) int {
	result := 1
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

// mod reduces a into [0, p).
func mod(a, p int) int {
	r := a % p
	if r < 0 {
		r += p
	}
	return r
}
