package scoring

// evaluation carries the running state of one Evaluate call.
type evaluation struct {
	scorer *Scorer
	word   Word
	result Result

	lineThreshold int
	planes        []int // [direction*p + intercept]
	lines         []int // [direction*p^2 + intercept]
}

// run executes one stage and reports whether its gate passed.
func (e *evaluation) run(stage Stage) bool {
	switch stage {
	case StageSizeGate:
		return e.sizeGate()
	case StageRangeGate:
		return e.rangeGate()
	case StagePlaneScan:
		e.scan()
		return e.scorePlanes()
	case StageLineScan:
		return e.scoreLines()
	case StageEquidistribution:
		e.scoreEquidistribution()
		return true
	default:
		return false
	}
}

func (e *evaluation) sizeGate() bool {
	p := e.scorer.space.Prime
	e.result.Size = len(e.scorer.fixed) + e.word.Ones()
	r := e.result.Size % p
	if r != 0 {
		e.result.Score += (p-1)/2 - min(r, p-r)
		return false
	}
	e.result.Score += p
	return true
}

func (e *evaluation) rangeGate() bool {
	p := e.scorer.space.Prime
	multiple := e.result.Size / p
	e.result.Multiple = multiple
	if multiple <= 2 || multiple >= p-2 {
		e.result.Score += p*p - multiple
		return false
	}
	e.result.Score += p * p
	e.lineThreshold = min(multiple, p-multiple)
	return true
}

// scan counts every included point on every plane and line.
func (e *evaluation) scan() {
	s := e.scorer
	directions := s.space.TotalDirections()
	planeWidth := s.space.TotalPlaneIntercepts()
	lineWidth := s.space.TotalLineIntercepts()

	e.planes = make([]int, directions*planeWidth)
	e.lines = make([]int, directions*lineWidth)
	determined := make([]bool, directions)

	for x, in := range s.materialize(e.word) {
		if !in {
			continue
		}
		planeRow := s.table.PlaneRow(x)
		lineRow := s.table.LineRow(x)
		for d := 0; d < directions; d++ {
			e.planes[d*planeWidth+int(planeRow[d])]++
			k := d*lineWidth + int(lineRow[d])
			e.lines[k]++
			if e.lines[k] > 1 {
				determined[d] = true
			}
		}
	}

	for _, ok := range determined {
		if ok {
			e.result.DeterminedDirections++
		}
	}
}

// scorePlanes awards p^2 to every hyperplane holding at most p points.
func (e *evaluation) scorePlanes() bool {
	p := e.scorer.space.Prime
	award := e.scorer.space.TotalLineIntercepts()
	passed := true
	for _, count := range e.planes {
		if count <= p {
			e.result.Score += award
		} else {
			e.result.Score += award - count
			passed = false
		}
	}
	return passed
}

// scoreLines awards p to every line holding at most min(m, p-m) points.
func (e *evaluation) scoreLines() bool {
	p := e.scorer.space.Prime
	passed := true
	for _, count := range e.lines {
		if count <= e.lineThreshold {
			e.result.Score += p
		} else {
			e.result.Score += p - count
			passed = false
		}
	}
	return passed
}

// scoreEquidistribution rewards directions whose hyperplanes hold equal counts.
func (e *evaluation) scoreEquidistribution() {
	p := e.scorer.space.Prime
	directions := e.scorer.space.TotalDirections()
	for d := 0; d < directions; d++ {
		counts := e.planes[d*p : (d+1)*p]
		lo, hi := counts[0], counts[0]
		for _, c := range counts[1:] {
			lo = min(lo, c)
			hi = max(hi, c)
		}
		if spread := hi - lo; spread == 0 {
			e.result.Score += p * directions
		} else {
			e.result.Score += p - spread
		}
	}
}
