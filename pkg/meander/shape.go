package meander

import (
	"math"

	"github.com/matzehuels/meander/pkg/geometry"
)

// Shape is a single meander unit. Its generated chains are always
// consistent with its type, amplitude, side, baseline offset and base
// segment: every mutator regenerates before returning.
//
// A non-dual shape has one chain. A dual (differential pair) shape has two,
// offset by +/- the baseline offset from the true baseline.
type Shape struct {
	settings Settings
	oracle   Oracle

	typ            Type
	width          int
	dual           bool
	baselineOffset int
	amplitude      int
	side           bool
	baseIndex      int
	targetBase     int
	meanCr         int

	p0          geometry.Point
	baseSeg     geometry.Seg
	clippedBase geometry.Seg
	chains      [2]geometry.Chain
}

// NewShape creates an empty unit for a track of the given width. The oracle
// supplies the clearance used for spacing and judges every Fit candidate.
func NewShape(st Settings, oracle Oracle, width int, dual bool) *Shape {
	return &Shape{
		settings: st,
		oracle:   oracle,
		typ:      TypeSingle,
		width:    width,
		dual:     dual,
	}
}

// Settings returns the settings snapshot the shape was created with.
func (s *Shape) Settings() Settings { return s.settings }

// Type returns the unit type.
func (s *Shape) Type() Type { return s.typ }

// SetType changes the unit type without regenerating; call Recalculate.
func (s *Shape) SetType(t Type) { s.typ = t }

// Amplitude returns the current detour height.
func (s *Shape) Amplitude() int { return s.amplitude }

// Side reports which side of the baseline the detour bulges to.
func (s *Shape) Side() bool { return s.side }

// Width returns the track width.
func (s *Shape) Width() int { return s.width }

// IsDual reports whether the shape carries two lines.
func (s *Shape) IsDual() bool { return s.dual }

// BaseIndex returns the index of the baseline segment this unit belongs to.
func (s *Shape) BaseIndex() int { return s.baseIndex }

// SetBaseIndex records which baseline segment this unit belongs to.
func (s *Shape) SetBaseIndex(i int) { s.baseIndex = i }

// BaselineOffset returns the signed lateral offset used in dual mode.
func (s *Shape) BaselineOffset() int { return s.baselineOffset }

// SetBaselineOffset sets the signed lateral offset used in dual mode.
func (s *Shape) SetBaselineOffset(offset int) { s.baselineOffset = offset }

// SetTargetBaselineLength pins the baseline span the shape must consume.
// Zero lets the geometry decide.
func (s *Shape) SetTargetBaselineLength(l int) { s.targetBase = l }

// BaseSegment returns the part of the baseline the shape consumes.
func (s *Shape) BaseSegment() geometry.Seg { return s.clippedBase }

// End returns the point on the baseline where the shape ends.
func (s *Shape) End() geometry.Point { return s.clippedBase.B }

// Chain returns generated line i (0, or 1 for the second line of a pair).
func (s *Shape) Chain(i int) geometry.Chain { return s.chains[i] }

// Clone returns a deep copy of the shape sharing the same oracle.
func (s *Shape) Clone() *Shape {
	c := *s
	c.chains[0] = s.chains[0].Clone()
	c.chains[1] = s.chains[1].Clone()
	return &c
}

func (s *Shape) clearance() int {
	if s.oracle == nil {
		return 0
	}
	return s.oracle.Clearance()
}

func (s *Shape) accepted() bool {
	return s.oracle == nil || s.oracle.CheckFit(s)
}

// Spacing returns the effective pitch between meander legs.
func (s *Shape) Spacing() int {
	if !s.dual {
		return max(s.width+s.clearance(), s.settings.Spacing)
	}
	sp := s.width + s.clearance() + 2*abs(s.baselineOffset)
	return max(sp, s.settings.Spacing)
}

// CornerRadius returns the corner radius for the current amplitude.
// Differential pairs always use a 100% radius.
func (s *Shape) CornerRadius() int {
	pct := s.settings.CornerRadiusPercentage
	if s.dual {
		pct = 100
	}
	spc := s.Spacing()
	opt := int(int64(spc) * int64(pct) / 200)
	lo := abs(s.baselineOffset)
	hi := min(s.amplitude/2, spc/2)
	return clamp(opt, lo, hi)
}

// MinAmplitude returns the smallest amplitude the shape may take.
func (s *Shape) MinAmplitude() int {
	m := max(s.settings.MinAmplitude, 2*abs(s.baselineOffset))
	if s.settings.CornerStyle == CornerRound {
		m = max(m, s.width+2*abs(s.baselineOffset))
	}
	return m
}

func (s *Shape) maxAmplitude() int {
	return max(s.settings.MaxAmplitude, s.MinAmplitude())
}

func (s *Shape) params() genParams {
	return genParams{
		style:        s.settings.CornerStyle,
		dual:         s.dual,
		cornerRadius: s.CornerRadius(),
		spacing:      s.Spacing(),
		amplitude:    s.amplitude,
		targetBase:   s.targetBase,
	}
}

func (s *Shape) regenerate(typ Type, dir geometry.Point) {
	g := s.params()
	if s.dual {
		s.chains[0], s.meanCr = generate(s.p0, dir, s.side, typ, s.baselineOffset, g)
		s.chains[1], _ = generate(s.p0, dir, s.side, typ, -s.baselineOffset, g)
		return
	}
	s.chains[0], s.meanCr = generate(s.p0, dir, s.side, typ, 0, g)
	s.chains[1] = geometry.Chain{}
}

// Fit tries to place a unit of type typ at p on base, bulging to side.
// Concrete types sweep the amplitude from the maximum down to the minimum
// by Step and keep the first candidate the oracle accepts. TypeCheckStart
// and TypeCheckFinish probe a Start+Turn or Turn+Finish pair and, on
// success, leave the receiver holding the first shape of the pair.
func (s *Shape) Fit(typ Type, base geometry.Seg, p geometry.Point, side bool) bool {
	switch typ {
	case TypeCheckStart:
		return s.fitChecked(TypeStart, TypeTurn, base, p, side)
	case TypeCheckFinish:
		return s.fitChecked(TypeTurn, TypeFinish, base, p, side)
	}

	minAmpl := s.MinAmplitude()
	step := max(s.settings.Step, 1)

	for ampl := s.maxAmplitude(); ampl >= minAmpl; ampl -= step {
		s.amplitude = ampl
		s.typ = typ
		s.baseSeg = base
		s.p0 = p
		s.side = side
		s.regenerate(typ, base.Vector())
		s.updateBaseSegment()

		if s.accepted() {
			return true
		}
	}
	return false
}

func (s *Shape) fitChecked(first, second Type, base geometry.Seg, p geometry.Point, side bool) bool {
	m, ok := s.probePair(first, second, base, p, side)
	if !ok {
		return false
	}
	idx := s.baseIndex
	*s = *m
	s.baseIndex = idx
	return true
}

// probePair fits first at p and second right after it on the opposite side,
// using scratch shapes. The receiver is not modified. On success the fitted
// first shape is returned.
func (s *Shape) probePair(first, second Type, base geometry.Seg, p geometry.Point, side bool) (*Shape, bool) {
	m1 := s.scratch()
	if !m1.Fit(first, base, p, side) {
		return nil, false
	}
	m2 := s.scratch()
	if !m2.Fit(second, base, m1.End(), !side) {
		return nil, false
	}
	return m1, true
}

func (s *Shape) scratch() *Shape {
	m := NewShape(s.settings, s.oracle, s.width, s.dual)
	m.baselineOffset = s.baselineOffset
	m.baseIndex = s.baseIndex
	return m
}

// Recalculate regenerates the chains from the current parameters. Corner
// units are fixed geometry and are left untouched.
func (s *Shape) Recalculate() {
	if s.typ == TypeCorner {
		return
	}
	s.regenerate(s.typ, s.baseSeg.Vector())
	s.updateBaseSegment()
}

// Resize sets a new amplitude and regenerates. Negative values are ignored.
func (s *Shape) Resize(amplitude int) {
	if amplitude < 0 {
		return
	}
	s.amplitude = amplitude
	s.Recalculate()
}

// MakeEmpty turns the unit into a straight run over its current baseline span.
func (s *Shape) MakeEmpty() {
	s.updateBaseSegment()
	dir := s.clippedBase.Vector()

	s.typ = TypeEmpty
	s.amplitude = 0
	s.regenerate(TypeEmpty, dir)
}

// MakeEmptyFrom turns the unit into a straight run from p, projected onto
// the baseline, to the end of its current baseline span. It is used after a
// preceding unit grew past the start of this one. p must not lie past the
// end of the span.
func (s *Shape) MakeEmptyFrom(p geometry.Point) {
	s.updateBaseSegment()
	start := s.baseSeg.LineProject(p)
	end := s.clippedBase.B

	s.typ = TypeEmpty
	s.amplitude = 0
	s.p0 = start
	s.regenerate(TypeEmpty, end.Sub(start))
	s.updateBaseSegment()
}

// MakeCorner turns the unit into a zero-length anchor at p1 (and p2 for
// the second line of a pair).
func (s *Shape) MakeCorner(p1, p2 geometry.Point) {
	s.typ = TypeCorner
	s.chains[0] = geometry.NewChain(p1)
	s.chains[1] = geometry.NewChain(p2)
	s.clippedBase = geometry.NewSeg(p1, p1)
}

// MakeArc turns the unit into a pass-through arc corner.
func (s *Shape) MakeArc(a1, a2 geometry.Arc) {
	s.typ = TypeCorner
	s.chains[0] = geometry.Chain{}
	s.chains[1] = geometry.Chain{}
	s.chains[0].AppendArc(a1)
	s.chains[1].AppendArc(a2)
	s.clippedBase = geometry.NewSeg(a1.End, a1.End)
}

// BaselineLength returns the length of baseline the unit consumes.
func (s *Shape) BaselineLength() int {
	return s.clippedBase.Length()
}

// CurrentLength returns the length of the first generated line.
func (s *Shape) CurrentLength() int64 {
	return int64(math.Round(s.chains[0].Length()))
}

// MinTunableLength returns the length the unit would have at its minimum
// amplitude while consuming the same baseline span.
func (s *Shape) MinTunableLength() int64 {
	c := s.Clone()
	c.SetTargetBaselineLength(s.BaselineLength())
	c.Resize(c.MinAmplitude())
	return c.CurrentLength()
}

// MaxTunableLength returns the length the unit would have at its maximum
// amplitude while consuming the same baseline span.
func (s *Shape) MaxTunableLength() int64 {
	c := s.Clone()
	c.SetTargetBaselineLength(s.BaselineLength())
	c.Resize(c.maxAmplitude())
	return c.CurrentLength()
}

func (s *Shape) updateBaseSegment() {
	if s.chains[0].PointCount() == 0 {
		return
	}
	if s.dual && s.chains[1].PointCount() > 0 {
		midA := midpoint(s.chains[0].Point(0), s.chains[1].Point(0))
		midB := midpoint(s.chains[0].Point(-1), s.chains[1].Point(-1))
		s.clippedBase = geometry.NewSeg(s.baseSeg.LineProject(midA), s.baseSeg.LineProject(midB))
		return
	}
	s.clippedBase = geometry.NewSeg(
		s.baseSeg.LineProject(s.chains[0].Point(0)),
		s.baseSeg.LineProject(s.chains[0].Point(-1)),
	)
}

func midpoint(a, b geometry.Point) geometry.Point {
	return geometry.FromCoord(a.Coord().Plus(b.Coord()).Times(0.5))
}

// clamp returns v bounded to [lo, hi], checking the lower bound first.
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi < v {
		return hi
	}
	return v
}
