package core

import "time"

// Example is a scored configuration kept by a search run. Subset is the
// word in its '0'/'1' text form.
type Example struct {
	RunID     RunID     `json:"run_id,omitempty" db:"run_id"`
	Rank      int       `json:"rank" db:"rank"`
	Prime     int       `json:"prime" db:"prime"`
	Score     int       `json:"score" db:"score"`
	Subset    string    `json:"subset" db:"subset"`
	Hash      Hash      `json:"hash,omitempty" db:"subset_hash"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// NewExample fills in the subset hash.
func NewExample(prime, score int, subset string) Example {
	return Example{Prime: prime, Score: score, Subset: subset, Hash: NewHash([]byte(subset))}
}
