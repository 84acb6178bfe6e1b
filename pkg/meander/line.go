package meander

import "github.com/matzehuels/meander/pkg/geometry"

// Line is an ordered sequence of meander units covering one or more
// baseline segments. Each unit starts where the previous one ended.
//
// A Line is not safe for concurrent use. Callers rebuild it from scratch
// (Clear, then MeanderSegment per baseline segment) whenever the input
// changes.
type Line struct {
	settings       Settings
	oracle         Oracle
	units          []*Shape
	last           geometry.Point
	width          int
	dual           bool
	baselineOffset int
}

// NewLine creates an empty line for a track (or pair) of the given width.
func NewLine(st Settings, oracle Oracle, width int, dual bool) *Line {
	return &Line{
		settings: st,
		oracle:   oracle,
		width:    width,
		dual:     dual,
	}
}

// Settings returns the settings snapshot the line was created with.
func (l *Line) Settings() Settings { return l.settings }

// SetBaselineOffset sets the lateral offset for dual lines.
func (l *Line) SetBaselineOffset(offset int) { l.baselineOffset = offset }

// IsDual reports whether the line tunes a differential pair.
func (l *Line) IsDual() bool { return l.dual }

// Width returns the track width.
func (l *Line) Width() int { return l.width }

// Last returns the baseline position where the next unit will start.
func (l *Line) Last() geometry.Point { return l.last }

// Units returns the placed units in order. The slice must not be modified.
func (l *Line) Units() []*Shape { return l.units }

func (l *Line) newShape(baseIndex int) *Shape {
	m := NewShape(l.settings, l.oracle, l.width, l.dual)
	m.SetBaselineOffset(l.baselineOffset)
	m.SetBaseIndex(baseIndex)
	return m
}

// MeanderSegment fills base with meander units, starting at base.A and
// alternating sides as long as the oracle allows. Segments that cannot be
// meandered are covered with plain corners. For non-dual lines the result
// is anchored by corners at both ends of base.
func (l *Line) MeanderSegment(base geometry.Seg, side bool, baseIndex int) {
	baseLen := base.Vector().Length()
	singleSided := l.settings.SingleSided
	step := float64(l.settings.Step)
	dir := base.Vector()

	if !l.dual {
		l.AddCorner(base.A, geometry.Point{})
	}

	turning := false
	started := false

	l.last = base.A

loop:
	for {
		m := l.newShape(baseIndex)
		thr := float64(m.Spacing())
		fail := false
		remaining := baseLen - l.last.Distance(base.A)

		addSingleIfFits := func() {
			fail = true

			if m.Fit(TypeSingle, base, l.last, side) {
				l.AddMeander(m)
				fail = false
				started = false
			}

			if fail && !singleSided {
				if m.Fit(TypeSingle, base, l.last, !side) {
					l.AddMeander(m)
					fail = false
					started = false
					side = !side
				}
			}
		}

		if remaining < step {
			break
		}

		switch {
		case !singleSided && remaining > 3.0*thr:
			if !turning {
				for i := 0; i < 2; i++ {
					checkSide := side
					if i == 1 {
						checkSide = !side
					}

					if m.Fit(TypeCheckStart, base, l.last, checkSide) {
						turning = true
						l.AddMeander(m)
						side = !checkSide
						started = true
						break
					}
				}

				if !turning {
					addSingleIfFits()
				}
			} else {
				if m.Fit(TypeCheckFinish, base, l.last, side) {
					m.Fit(TypeTurn, base, l.last, side)
					l.AddMeander(m)
					side = !side
					started = true
				} else {
					// A rejected finish is not placed; the
					// corner advance below takes over.
					if m.Fit(TypeFinish, base, l.last, side) {
						l.AddMeander(m)
					} else {
						fail = true
					}
					started = false
					turning = false
				}
			}

		case !singleSided && started:
			if m.Fit(TypeFinish, base, l.last, side) {
				l.AddMeander(m)
			}
			break loop

		case !turning && remaining > thr*2.0:
			addSingleIfFits()

		default:
			fail = true
		}

		remaining = baseLen - l.last.Distance(base.A)
		if remaining < step {
			break
		}

		if fail {
			tmp := l.newShape(baseIndex)
			nextP := tmp.Spacing() - 2*tmp.CornerRadius() + l.settings.Step
			pn := l.last.Add(dir.Resize(nextP))

			// The advance must stay on the segment and never pass its end.
			if nextP <= 0 || l.dual || !base.Contains(pn) || pn.Sub(base.A).Dot(dir) > dir.Dot(dir) {
				break
			}
			l.AddCorner(pn, geometry.Point{})
		}
	}

	if !l.dual {
		l.AddCorner(base.B, geometry.Point{})
	}
}

// AddMeander appends a fitted unit and advances the cursor to its end.
func (l *Line) AddMeander(m *Shape) {
	l.last = m.BaseSegment().B
	l.units = append(l.units, m)
}

// AddCorner appends a zero-length anchor at a (and b for the second line
// of a pair).
func (l *Line) AddCorner(a, b geometry.Point) {
	m := NewShape(l.settings, l.oracle, l.width, l.dual)
	m.MakeCorner(a, b)
	l.last = a
	l.units = append(l.units, m)
}

// AddArc appends a pass-through arc unit. The cursor moves to the end of a1.
func (l *Line) AddArc(a1, a2 geometry.Arc) {
	m := NewShape(l.settings, l.oracle, l.width, l.dual)
	m.MakeArc(a1, a2)
	l.last = a1.End
	l.units = append(l.units, m)
}

// AddArcAndPt appends an arc for the first line and a point for the second.
func (l *Line) AddArcAndPt(a1 geometry.Arc, p2 geometry.Point) {
	l.AddArc(a1, geometry.Arc{Center: p2, Start: p2, End: p2})
}

// AddPtAndArc appends a point for the first line and an arc for the second.
func (l *Line) AddPtAndArc(p1 geometry.Point, a2 geometry.Arc) {
	l.AddArc(geometry.Arc{Center: p1, Start: p1, End: p1}, a2)
}

// Clear removes all units.
func (l *Line) Clear() {
	l.units = nil
	l.last = geometry.Point{}
}

// Chain returns the concatenated output polyline of line i (0, or 1 for
// the second line of a pair).
func (l *Line) Chain(i int) geometry.Chain {
	var c geometry.Chain
	for _, m := range l.units {
		c.AppendChain(m.Chain(i))
	}
	return c
}

// Length returns the length of the first output line.
func (l *Line) Length() float64 {
	return l.Chain(0).Length()
}

// CheckSelfIntersections reports whether shape keeps at least clearance
// from every placed meander of the line. Corners, empty runs and units on
// a parallel baseline are not checked.
func (l *Line) CheckSelfIntersections(shape *Shape, clearance int) bool {
	b1 := shape.BaseSegment()
	c1 := shape.Chain(0)

	for i := len(l.units) - 1; i >= 0; i-- {
		m := l.units[i]

		if m.Type() == TypeEmpty || m.Type() == TypeCorner {
			continue
		}

		if b1.ApproxParallel(m.BaseSegment()) {
			continue
		}

		segs := m.Chain(0).FlatSegments()
		for j := len(segs) - 1; j >= 0; j-- {
			if c1.Collide(segs[j], clearance) {
				return false
			}
		}
	}

	return true
}
