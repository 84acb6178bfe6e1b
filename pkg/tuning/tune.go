package tuning

import (
	"math"
	"time"

	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/meander"
)

// TuneNet meanders the request's path and trims the result to the target
// length. It performs no caching; see [Runner.Tune].
func TuneNet(req Request) (*Result, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	st := req.Settings

	oracle := req.Board.NewOracle(req.Width, req.Clearance)
	line := meander.NewLine(st, oracle, req.Width, req.Dual)
	line.SetBaselineOffset(req.offset())
	oracle.Attach(line)

	baseline := req.Baseline()
	baseLen := baseline.Length()
	elongation := st.TargetLength - int64(math.Round(baseLen))

	// A path already at or past its target is passed through untouched.
	tune := st.TargetLength == 0 || elongation > 0
	place(line, &req, tune)
	if st.TargetLength > 0 && tune {
		TuneLength(line, elongation)
	}

	res := newResult(req, line, baseLen)
	res.Stats.Checks = oracle.Checks()
	res.Stats.Rejected = oracle.Rejected()
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// place walks the path edge by edge. Straight edges are meandered when tune
// is set; arcs are passed through as arc units.
func place(line *meander.Line, req *Request, tune bool) {
	off := req.offset()
	side := req.FlipSide

	for i, e := range req.edges() {
		if e.arc != nil {
			if req.Dual {
				a1, a2 := offsetArcs(*e.arc, off)
				line.AddArc(a1, a2)
			} else {
				line.AddArc(*e.arc, *e.arc)
			}
			continue
		}

		if !req.Dual {
			if tune {
				line.MeanderSegment(e.seg, side, i)
			} else {
				line.AddCorner(e.seg.A, e.seg.A)
				line.AddCorner(e.seg.B, e.seg.B)
			}
			continue
		}

		n := e.seg.Vector().Perpendicular().Resize(off)
		line.AddCorner(e.seg.A.Add(n), e.seg.A.Sub(n))
		if tune {
			line.MeanderSegment(e.seg, side, i)
		}
		line.AddCorner(e.seg.B.Add(n), e.seg.B.Sub(n))
	}
}

// offsetArcs returns the two concentric arcs a pair follows around a
// centerline arc. The first arc lies on the left of the direction of travel.
func offsetArcs(a geometry.Arc, off int) (geometry.Arc, geometry.Arc) {
	inward := a.Center.Sub(a.Start).Resize(off)
	if a.Angle < 0 {
		inward = geometry.Point{}.Sub(inward)
	}
	left := geometry.NewArc(a.Center, a.Start.Add(inward), a.Angle)
	right := geometry.NewArc(a.Center, a.Start.Sub(inward), a.Angle)
	return left, right
}

// TuneLength trims a meandered line so it adds roughly elongation to its
// baseline. Units are kept in order until the next one would overshoot;
// that unit becomes the closing Single or Finish and everything after it
// becomes a straight run. The remaining overshoot is then spread over the
// kept units as an amplitude reduction.
func TuneLength(line *meander.Line, elongation int64) {
	units := line.Units()

	var (
		acc      int64
		finished *meander.Shape
	)
	for _, m := range units {
		if !tunable(m) {
			continue
		}
		if finished != nil {
			trimAfter(m, finished)
			continue
		}

		end := m.Clone()
		end.SetType(closingType(m.Type()))
		end.Recalculate()

		if acc+added(end) >= elongation {
			m.SetType(end.Type())
			m.Recalculate()
			finished = m
		}
		acc += added(m)
	}

	balance(units, acc-elongation)
}

// balance lowers amplitudes until the kept units overshoot by no more than
// excess allows or no unit can shrink any further.
func balance(units []*meander.Shape, excess int64) {
	for pass := 0; pass < 4 && excess > 0; pass++ {
		var shrinkable []*meander.Shape
		for _, m := range units {
			if tunable(m) && m.Amplitude() > m.MinAmplitude() {
				shrinkable = append(shrinkable, m)
			}
		}
		if len(shrinkable) == 0 {
			return
		}

		// Every unit has two legs, so its length changes by twice the
		// amplitude change.
		delta := int(excess / int64(len(shrinkable)) / 2)
		if delta == 0 {
			delta = 1
		}
		for _, m := range shrinkable {
			before := added(m)
			m.Resize(max(m.Amplitude()-delta, m.MinAmplitude()))
			excess -= before - added(m)
		}
	}
}

// trimAfter straightens a unit following the closing unit. If the closing
// unit already reaches past this one, the unit collapses onto its end.
func trimAfter(m, closing *meander.Shape) {
	if m.BaseIndex() != closing.BaseIndex() {
		m.MakeEmpty()
		return
	}

	from := closing.End()
	dir := closing.BaseSegment().Vector()
	if m.BaseSegment().A.Sub(from).Dot(dir) >= 0 {
		m.MakeEmpty()
		return
	}
	if m.End().Sub(from).Dot(dir) > 0 {
		m.MakeEmptyFrom(from)
		return
	}

	c0 := closing.Chain(0)
	c1 := closing.Chain(1)
	p1 := c0.Point(-1)
	p2 := p1
	if c1.PointCount() > 0 {
		p2 = c1.Point(-1)
	}
	m.MakeCorner(p1, p2)
}

func tunable(m *meander.Shape) bool {
	return m.Type() != meander.TypeCorner && m.Type() != meander.TypeEmpty
}

func closingType(t meander.Type) meander.Type {
	if t == meander.TypeStart || t == meander.TypeSingle {
		return meander.TypeSingle
	}
	return meander.TypeFinish
}

// added returns how much length a unit adds over the baseline it consumes.
func added(m *meander.Shape) int64 {
	return m.CurrentLength() - int64(m.BaselineLength())
}
