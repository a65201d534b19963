package scoring

import "fmt"

// Stage names a step of the staged evaluation. A Result carries the stage
// whose gate failed, or StageDone when every gate passed.
type Stage int

const (
	StageSizeGate Stage = iota
	StageRangeGate
	StagePlaneScan
	StageLineScan
	StageEquidistribution
	StageDone
)

var stageNames = [...]string{
	StageSizeGate:         "size_gate",
	StageRangeGate:        "range_gate",
	StagePlaneScan:        "plane_scan",
	StageLineScan:         "line_scan",
	StageEquidistribution: "equidistribution",
	StageDone:             "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", text)
}
