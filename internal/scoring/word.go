package scoring

import (
	"fmt"
	"strings"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
)

// Word is a 0/1 inclusion vector over every point of AG(3,p) except the
// four fixed points, in ascending point-index order.
type Word []uint8

// ParseWord reads a string of '0' and '1' characters.
func ParseWord(s string) (Word, error) {
	word := make(Word, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			word[i] = 1
		default:
			return nil, core.NewValidationError("word", fmt.Sprintf("position %d is %q, want 0 or 1", i, s[i]))
		}
	}
	return word, nil
}

// String renders the word as '0' and '1' characters.
func (w Word) String() string {
	var b strings.Builder
	b.Grow(len(w))
	for _, bit := range w {
		if bit != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Ones counts the included positions.
func (w Word) Ones() int {
	n := 0
	for _, bit := range w {
		if bit != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of w.
func (w Word) Clone() Word {
	return append(Word(nil), w...)
}

// PrimeForWordLength recovers p from a word length p^3 - 4.
func PrimeForWordLength(n int) (int, error) {
	for p := 2; p*p*p-4 <= n; p++ {
		if p*p*p-4 == n && geometry.IsPrime(p) {
			return p, nil
		}
	}
	return 0, core.NewValidationError("word", fmt.Sprintf("length %d is not p^3-4 for a prime p", n))
}
