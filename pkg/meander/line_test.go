package meander

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/meander/pkg/geometry"
)

func TestMeanderSegmentDoubleSided(t *testing.T) {
	l := NewLine(testSettings(), permissiveOracle{clearance: 10}, 10, false)
	base := baseline(1000)
	l.MeanderSegment(base, false, 0)

	want := []Type{
		TypeCorner, TypeStart,
		TypeTurn, TypeTurn, TypeTurn, TypeTurn, TypeTurn, TypeTurn,
		TypeFinish, TypeCorner,
	}
	if diff := cmp.Diff(want, unitTypes(l)); diff != "" {
		t.Errorf("unit types mismatch (-want +got):\n%s", diff)
	}

	c := l.Chain(0)
	if c.Point(0) != base.A || c.Point(-1) != base.B {
		t.Errorf("line runs %v..%v, want %v..%v", c.Point(0), c.Point(-1), base.A, base.B)
	}
	if l.Length() <= 1000 {
		t.Errorf("Length() = %v, want > 1000", l.Length())
	}
	if l.Last() != base.B {
		t.Errorf("Last() = %v, want %v", l.Last(), base.B)
	}

	// detours alternate sides after the start
	prevSide := l.Units()[1].Side()
	for _, u := range l.Units()[2:9] {
		if u.Side() == prevSide {
			t.Errorf("%s at %v does not alternate side", u.Type(), u.BaseSegment())
		}
		prevSide = u.Side()
	}
}

func TestMeanderSegmentSingleSided(t *testing.T) {
	st := testSettings()
	st.SingleSided = true
	l := NewLine(st, permissiveOracle{clearance: 10}, 10, false)
	l.MeanderSegment(baseline(1000), false, 0)

	want := []Type{
		TypeCorner,
		TypeSingle, TypeSingle, TypeSingle, TypeSingle,
		TypeCorner, TypeCorner,
	}
	if diff := cmp.Diff(want, unitTypes(l)); diff != "" {
		t.Errorf("unit types mismatch (-want +got):\n%s", diff)
	}

	for _, u := range l.Units() {
		if u.Type() == TypeSingle && u.Side() {
			t.Errorf("single at %v flipped side", u.BaseSegment())
		}
	}
	if got := l.Units()[5].End(); got != geometry.Pt(910, 0) {
		t.Errorf("corner advance at %v, want (910, 0)", got)
	}
}

func TestMeanderSegmentTooShort(t *testing.T) {
	l := NewLine(testSettings(), permissiveOracle{clearance: 10}, 10, false)
	base := baseline(5)
	l.MeanderSegment(base, false, 0)

	want := []Type{TypeCorner, TypeCorner}
	if diff := cmp.Diff(want, unitTypes(l)); diff != "" {
		t.Errorf("unit types mismatch (-want +got):\n%s", diff)
	}
	if l.Length() != 5 {
		t.Errorf("Length() = %v, want 5", l.Length())
	}
}

func TestMeanderSegmentObstructed(t *testing.T) {
	l := NewLine(testSettings(), blockedOracle{}, 10, false)
	base := baseline(1000)
	l.MeanderSegment(base, false, 0)

	var xs []int
	for _, u := range l.Units() {
		if u.Type() != TypeCorner {
			t.Fatalf("unexpected %s unit on a blocked board", u.Type())
		}
		xs = append(xs, u.End().X)
	}

	want := []int{0, 110, 220, 330, 440, 550, 660, 770, 880, 990, 1000}
	if diff := cmp.Diff(want, xs); diff != "" {
		t.Errorf("corner positions mismatch (-want +got):\n%s", diff)
	}
	if l.Length() != 1000 {
		t.Errorf("Length() = %v, want 1000", l.Length())
	}
}

func TestMeanderSegmentDual(t *testing.T) {
	st := testSettings()
	l := NewLine(st, permissiveOracle{clearance: 10}, 10, true)
	l.SetBaselineOffset(20)
	base := baseline(1000)
	l.MeanderSegment(base, false, 0)

	if len(l.Units()) == 0 {
		t.Fatal("dual line placed no units")
	}
	for _, u := range l.Units() {
		if u.Type() == TypeCorner {
			t.Errorf("dual line got a corner at %v", u.BaseSegment())
		}
		if u.Amplitude() < u.MinAmplitude() {
			t.Errorf("%s amplitude %d below minimum %d", u.Type(), u.Amplitude(), u.MinAmplitude())
		}
		a, b := u.Chain(0), u.Chain(1)
		if mid := midpoint(a.Point(0), b.Point(0)); !base.Contains(mid) {
			t.Errorf("%s starts off-center at %v", u.Type(), mid)
		}
		if mid := midpoint(a.Point(-1), b.Point(-1)); !base.Contains(mid) {
			t.Errorf("%s ends off-center at %v", u.Type(), mid)
		}
	}
}

func TestLineProperties(t *testing.T) {
	cases := []struct {
		name   string
		length int
		st     func(*Settings)
		oracle Oracle
	}{
		{"double sided", 1000, func(*Settings) {}, permissiveOracle{clearance: 10}},
		{"single sided", 1000, func(s *Settings) { s.SingleSided = true }, permissiveOracle{clearance: 10}},
		{"single sided odd length", 909, func(s *Settings) { s.SingleSided = true }, permissiveOracle{clearance: 10}},
		{"chamfer", 1000, func(s *Settings) { s.CornerStyle = CornerChamfer }, permissiveOracle{clearance: 10}},
		{"capped amplitude", 1000, func(*Settings) {}, amplitudeCap{limit: 90}},
		{"blocked", 1000, func(*Settings) {}, blockedOracle{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := testSettings()
			tc.st(&st)
			l := NewLine(st, tc.oracle, 10, false)
			base := baseline(tc.length)
			l.MeanderSegment(base, false, 0)

			units := l.Units()
			pos := -1
			for i, u := range units {
				c := u.Chain(0)

				// units start where the previous one stopped
				if i > 0 && u.Type() != TypeCorner && c.Point(0) != units[i-1].End() {
					t.Errorf("unit %d (%s) starts at %v, previous ends at %v",
						i, u.Type(), c.Point(0), units[i-1].End())
				}

				// baseline consumed left to right
				bs := u.BaseSegment()
				if bs.A.X < pos || bs.B.X < bs.A.X {
					t.Errorf("unit %d (%s) consumes %v after position %d", i, u.Type(), bs, pos)
				}
				pos = bs.B.X

				if u.Type() == TypeCorner {
					continue
				}
				if u.Amplitude() < u.MinAmplitude() || u.Amplitude() > st.MaxAmplitude {
					t.Errorf("unit %d amplitude %d outside [%d, %d]", i, u.Amplitude(), u.MinAmplitude(), st.MaxAmplitude)
				}
				for _, p := range c.Flatten() {
					if math.Abs(float64(p.Y)) > float64(u.Amplitude())+1 {
						t.Errorf("unit %d point %v exceeds amplitude %d", i, p, u.Amplitude())
					}
				}
			}

			c := l.Chain(0)
			if c.Point(0) != base.A || c.Point(-1) != base.B {
				t.Errorf("line runs %v..%v, want %v..%v", c.Point(0), c.Point(-1), base.A, base.B)
			}
			if l.Length() < float64(tc.length) {
				t.Errorf("Length() = %v, tuning must never shorten the track", l.Length())
			}
		})
	}
}

func TestMeanderSegmentFinishRefused(t *testing.T) {
	o := &finishRefused{}
	l := NewLine(testSettings(), o, 10, false)
	base := baseline(1000)
	l.MeanderSegment(base, false, 0)

	if o.refused == 0 {
		t.Fatal("no Finish was offered to the oracle")
	}

	var starts int
	pos := 0
	for i, u := range l.Units() {
		switch u.Type() {
		case TypeFinish:
			t.Errorf("unit %d is a Finish the oracle refused", i)
		case TypeStart:
			starts++
		}
		bs := u.BaseSegment()
		if bs.A.X < pos {
			t.Errorf("unit %d (%s) consumes %v after position %d", i, u.Type(), bs, pos)
		}
		pos = bs.B.X
	}
	if starts == 0 {
		t.Error("expected Start units ahead of the refused Finish")
	}

	c := l.Chain(0)
	if c.Point(0) != base.A || c.Point(-1) != base.B {
		t.Errorf("line runs %v..%v, want %v..%v", c.Point(0), c.Point(-1), base.A, base.B)
	}
}

func TestMeanderSegmentCornersStayOnBaseline(t *testing.T) {
	for _, singleSided := range []bool{false, true} {
		st := testSettings()
		st.SingleSided = singleSided

		for n := 300; n <= 2000; n += 7 {
			l := NewLine(st, permissiveOracle{clearance: 10}, 10, false)
			l.MeanderSegment(baseline(n), false, 0)

			pos := 0
			for i, u := range l.Units() {
				bs := u.BaseSegment()
				if bs.A.X < pos || (u.Type() == TypeCorner && bs.B.X > n) {
					t.Errorf("length %d single sided %v: unit %d (%s) consumes %v after position %d",
						n, singleSided, i, u.Type(), bs, pos)
					break
				}
				pos = bs.B.X
			}
		}
	}
}

func TestCheckSelfIntersections(t *testing.T) {
	l := NewLine(testSettings(), permissiveOracle{clearance: 10}, 10, false)
	l.MeanderSegment(baseline(1000), false, 0)

	// a probe on a perpendicular baseline crossing the meanders
	probe := NewShape(testSettings(), permissiveOracle{clearance: 10}, 10, false)
	cross := geometry.NewSeg(geometry.Pt(300, -500), geometry.Pt(300, 500))
	probe.Fit(TypeSingle, cross, geometry.Pt(300, -100), false)

	if l.CheckSelfIntersections(probe, 20) {
		t.Error("CheckSelfIntersections() = true for a crossing shape")
	}

	// far away on a perpendicular baseline
	far := geometry.NewSeg(geometry.Pt(5000, 0), geometry.Pt(5000, 1000))
	probe.Fit(TypeSingle, far, geometry.Pt(5000, 0), false)
	if !l.CheckSelfIntersections(probe, 20) {
		t.Error("CheckSelfIntersections() = false for a distant shape")
	}

	// parallel baselines are never checked against each other
	parallel := geometry.NewSeg(geometry.Pt(0, 100), geometry.Pt(1000, 100))
	probe.Fit(TypeSingle, parallel, geometry.Pt(0, 100), false)
	if !l.CheckSelfIntersections(probe, 20) {
		t.Error("CheckSelfIntersections() = false for a parallel shape")
	}
}

func TestSelfIntersectionFreedom(t *testing.T) {
	const clearance = 20
	oracle := &selfCheckOracle{clearance: clearance}
	l := NewLine(testSettings(), oracle, 10, false)
	oracle.line = l

	path := []geometry.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}
	for i := 0; i+1 < len(path); i++ {
		l.MeanderSegment(geometry.NewSeg(path[i], path[i+1]), false, i)
	}

	units := l.Units()
	for i := range units {
		for j := i + 1; j < len(units); j++ {
			a, b := units[i], units[j]
			if a.Type() == TypeCorner || b.Type() == TypeCorner {
				continue
			}
			if a.BaseSegment().ApproxParallel(b.BaseSegment()) {
				continue
			}
			for _, s := range a.Chain(0).FlatSegments() {
				if b.Chain(0).Collide(s, clearance) {
					t.Fatalf("units %d (%s) and %d (%s) come within %d", i, a.Type(), j, b.Type(), clearance)
				}
			}
		}
	}

	c := l.Chain(0)
	if c.Point(0) != path[0] || c.Point(-1) != path[len(path)-1] {
		t.Errorf("line runs %v..%v", c.Point(0), c.Point(-1))
	}
}

func TestLineArcs(t *testing.T) {
	l := NewLine(testSettings(), nil, 10, false)
	arc := geometry.NewArc(geometry.Pt(0, 100), geometry.Pt(0, 0), math.Pi/2)

	l.AddCorner(geometry.Pt(-50, 0), geometry.Point{})
	l.AddArcAndPt(arc, geometry.Pt(1, 1))
	if l.Last() != arc.End {
		t.Errorf("Last() = %v, want %v", l.Last(), arc.End)
	}
	l.AddPtAndArc(geometry.Pt(100, 100), arc)

	c := l.Chain(0)
	if c.PointCount() != 3 || c.ArcAt(1) == nil {
		t.Errorf("chain = %v, want corner, arc", c.Points())
	}
	want := 50 + arc.Length()
	if math.Abs(l.Length()-want) > 1e-9 {
		t.Errorf("Length() = %v, want %v", l.Length(), want)
	}

	l.Clear()
	if len(l.Units()) != 0 || l.Chain(0).PointCount() != 0 {
		t.Error("Clear() left units behind")
	}
}
