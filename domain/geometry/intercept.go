package geometry

import (
	"fmt"

	"pointconfig/domain/core"
)

// PlaneInterceptByIndex returns dot(point, direction) mod p working on the
// indices directly. Coordinates above the pivot are zero in the direction and
// are skipped; the pivot contributes the point's coordinate unchanged.
func PlaneInterceptByIndex(s Space, point, direction int) int {
	p := s.Prime
	k := DirectionSubdimension(s, direction)

	rest := point / pow(p, s.Dimension-1-k)
	dot := rest % p
	rest /= p

	sub := direction - DirectionOffset(p, k)
	for i := k - 1; i >= 0; i-- {
		dot += (rest % p) * (sub % p)
		rest /= p
		sub /= p
	}
	return dot % p
}

// LineInterceptByIndex returns the index of the line through point parallel
// to direction. Moving along the direction by the point's pivot coordinate
// lands on the unique point of the line whose pivot coordinate is zero; the
// remaining n-1 coordinates of that point are the intercept.
func LineInterceptByIndex(s Space, point, direction int) int {
	p, n := s.Prime, s.Dimension
	k := DirectionSubdimension(s, direction)
	key := (point / pow(p, n-1-k)) % p
	sub := direction - DirectionOffset(p, k)

	intercept, place := 0, 1
	rest := point
	for i := n - 1; i >= 0; i-- {
		coord := rest % p
		rest /= p
		if i == k {
			continue
		}
		d := 0
		if i < k {
			d = sub % p
			sub /= p
		}
		intercept += mod(coord-d*key, p) * place
		place *= p
	}
	return intercept
}

// PlaneIntercept returns dot(point, direction) mod p for coordinate vectors.
// The direction does not need to be normalized.
func PlaneIntercept(p int, point, direction []int) int {
	dot := 0
	for i := range point {
		dot += mod(point[i], p) * mod(direction[i], p)
	}
	return dot % p
}

// LineIntercept returns the n-1 intercept components of the line through
// point parallel to direction. The direction is normalized by the inverse of
// its pivot first, so any nonzero multiple yields the same line.
func LineIntercept(p int, point, direction []int) ([]int, error) {
	normalized, err := Normalize(p, direction)
	if err != nil {
		return nil, err
	}
	k := pivot(p, normalized)
	key := mod(point[k], p)

	intercept := make([]int, 0, len(point)-1)
	for i := range point {
		if i == k {
			continue
		}
		intercept = append(intercept, mod(point[i]-normalized[i]*key, p))
	}
	return intercept, nil
}

// Normalize scales a nonzero direction so that its pivot equals 1.
func Normalize(p int, direction []int) ([]int, error) {
	k := pivot(p, direction)
	if k < 0 {
		return nil, core.NewValidationError("direction", fmt.Sprintf("%v is zero mod %d", direction, p))
	}
	inverse := modInverse(mod(direction[k], p), p)
	normalized := make([]int, len(direction))
	for i, c := range direction {
		normalized[i] = mod(c, p) * inverse % p
	}
	return normalized, nil
}

// pivot returns the position of the last coordinate that is nonzero mod p,
// or -1 for the zero vector.
func pivot(p int, direction []int) int {
	for i := len(direction) - 1; i >= 0; i-- {
		if mod(direction[i], p) != 0 {
			return i
		}
	}
	return -1
}

// modInverse uses Fermat's little theorem; a must be nonzero mod the prime p.
func modInverse(a, p int) int {
	result, base, exp := 1, a%p, p-2
	for exp > 0 {
		if exp&1 == 1 {
			result = result * base % p
		}
		base = base * base % p
		exp >>= 1
	}
	return result
}
