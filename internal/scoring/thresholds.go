package scoring

import "fmt"

// Threshold is a cumulative score boundary reached when a stage passes.
type Threshold struct {
	Score int    `json:"score" yaml:"score"`
	Label string `json:"label" yaml:"label"`
}

// Thresholds lists the four cumulative boundaries for prime p in
// increasing order. They are a reporting aid and play no part in scoring.
func Thresholds(p int) []Threshold {
	directions := 1 + p + p*p
	score := 0
	out := make([]Threshold, 0, 4)

	score += p
	out = append(out, Threshold{Score: score, Label: fmt.Sprintf("Size a multiple of %d", p)})
	score += p * p
	out = append(out, Threshold{Score: score, Label: "Size multiple lies in the correct range"})
	score += directions * p * p
	out = append(out, Threshold{Score: score, Label: fmt.Sprintf("All planes have %d or fewer points", p)})
	score += directions * p * p * p
	out = append(out, Threshold{Score: score, Label: "No line contains too many points"})
	return out
}

// MaxThreshold is the last boundary of Thresholds(p).
func MaxThreshold(p int) int {
	thresholds := Thresholds(p)
	return thresholds[len(thresholds)-1].Score
}

// NormalizedScore expresses how far score lies past the last threshold, in
// units of the full equidistribution bonus of one direction.
func NormalizedScore(p, score int) float64 {
	directions := 1 + p + p*p
	return float64(score-MaxThreshold(p)) / float64(p*directions)
}

// AutoDensity returns the inclusion probability whose expected configuration
// size, fixed points included, is the middle multiple ((p-1)/2)*p.
func AutoDensity(p int) float64 {
	target := (p - 1) / 2 * p
	return float64(target-4) / float64(p*p*p-4)
}
