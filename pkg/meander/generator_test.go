package meander

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/meander/pkg/geometry"
)

func singleParams(style CornerStyle) genParams {
	return genParams{
		style:        style,
		cornerRadius: 25,
		spacing:      100,
		amplitude:    200,
	}
}

func TestGenerateSingle(t *testing.T) {
	c, cr := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, TypeSingle, 0, singleParams(CornerRound))

	if cr != 25 {
		t.Errorf("corner radius = %d, want 25", cr)
	}

	want := []geometry.Point{
		{X: 0, Y: 0}, {X: 25, Y: 25}, {X: 25, Y: 175}, {X: 50, Y: 200},
		{X: 100, Y: 200}, {X: 125, Y: 175}, {X: 125, Y: 25}, {X: 150, Y: 0},
		{X: 200, Y: 0},
	}
	if diff := cmp.Diff(want, c.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	arcs := 0
	for i := 0; i < c.SegmentCount(); i++ {
		if a := c.ArcAt(i); a != nil {
			arcs++
			if r := a.Radius(); math.Abs(r-25) > 1e-9 {
				t.Errorf("arc %d radius = %v, want 25", i, r)
			}
		}
	}
	if arcs != 4 {
		t.Errorf("arc count = %d, want 4", arcs)
	}

	wantLen := 400 + 50*math.Pi
	if got := c.Length(); math.Abs(got-wantLen) > 1e-6 {
		t.Errorf("Length = %v, want %v", got, wantLen)
	}
}

func TestGenerateMirrored(t *testing.T) {
	up, _ := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, TypeSingle, 0, singleParams(CornerRound))
	down, _ := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), true, TypeSingle, 0, singleParams(CornerRound))

	if up.PointCount() != down.PointCount() {
		t.Fatalf("point counts differ: %d vs %d", up.PointCount(), down.PointCount())
	}
	for i := 0; i < up.PointCount(); i++ {
		u, d := up.Point(i), down.Point(i)
		if u.X != d.X || u.Y != -d.Y {
			t.Errorf("point %d: %v is not the mirror of %v", i, d, u)
		}
	}
	if math.Abs(up.Length()-down.Length()) > 1e-9 {
		t.Errorf("mirrored length %v != %v", down.Length(), up.Length())
	}
}

func TestGenerateChamfer(t *testing.T) {
	c, _ := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, TypeSingle, 0, singleParams(CornerChamfer))

	for i := 0; i < c.SegmentCount(); i++ {
		if c.ArcAt(i) != nil {
			t.Fatalf("chamfered shape has an arc at edge %d", i)
		}
	}
	if c.Point(1) != geometry.Pt(25, 25) {
		t.Errorf("first chamfer ends at %v, want (25, 25)", c.Point(1))
	}
	wantLen := 400 + 4*25*math.Sqrt2
	if got := c.Length(); math.Abs(got-wantLen) > 1e-6 {
		t.Errorf("Length = %v, want %v", got, wantLen)
	}
}

func TestGenerateDualChamfer(t *testing.T) {
	g := genParams{style: CornerChamfer, dual: true, cornerRadius: 50, spacing: 140, amplitude: 200}
	origin, dir := geometry.Pt(0, 0), geometry.Pt(1000, 0)

	// Corners wider than the mean radius are pulled in by 2*20*tan(22.5deg)
	// so their diagonals run parallel to the partner line's.
	outer, _ := generate(origin, dir, false, TypeStart, 20, g)
	wantOuter := []geometry.Point{
		{X: 0, Y: 20}, {X: 30, Y: 50}, {X: 30, Y: 170}, {X: 30, Y: 187},
		{X: 83, Y: 240}, {X: 100, Y: 240}, {X: 140, Y: 240}, {X: 157, Y: 240},
		{X: 210, Y: 187}, {X: 210, Y: 170}, {X: 210, Y: 50}, {X: 210, Y: 20},
		{X: 210, Y: 0},
	}
	if diff := cmp.Diff(wantOuter, outer.Points()); diff != "" {
		t.Errorf("outer line mismatch (-want +got):\n%s", diff)
	}

	inner, _ := generate(origin, dir, false, TypeStart, -20, g)
	wantInner := []geometry.Point{
		{X: 0, Y: -20}, {X: 17, Y: -20}, {X: 70, Y: 33}, {X: 70, Y: 50},
		{X: 70, Y: 170}, {X: 100, Y: 200}, {X: 140, Y: 200}, {X: 170, Y: 170},
		{X: 170, Y: 50}, {X: 170, Y: 20}, {X: 170, Y: 0},
	}
	if diff := cmp.Diff(wantInner, inner.Points()); diff != "" {
		t.Errorf("inner line mismatch (-want +got):\n%s", diff)
	}

	gap := func(p geometry.Point, c geometry.Chain) float64 {
		d := math.Inf(1)
		for _, s := range c.FlatSegments() {
			d = math.Min(d, s.Distance(p))
		}
		return d
	}
	for _, typ := range []Type{TypeStart, TypeTurn, TypeFinish, TypeSingle} {
		a, _ := generate(origin, dir, false, typ, 20, g)
		b, _ := generate(origin, dir, false, typ, -20, g)
		for _, pair := range [][2]geometry.Chain{{a, b}, {b, a}} {
			for _, p := range pair[0].Points() {
				if d := gap(p, pair[1]); d < 39.5 || d > 44 {
					t.Errorf("%s: point %v is %.1f from the partner line, want about 40", typ, p, d)
				}
			}
		}
	}
}

func TestGenerateTypes(t *testing.T) {
	g := singleParams(CornerRound)

	tests := []struct {
		typ     Type
		wantEnd geometry.Point
	}{
		{TypeStart, geometry.Pt(125, 0)},
		{TypeTurn, geometry.Pt(100, 0)},
		{TypeFinish, geometry.Pt(175, 0)},
		{TypeSingle, geometry.Pt(200, 0)},
		{TypeEmpty, geometry.Pt(1000, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c, _ := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, tt.typ, 0, g)
			if c.Point(0) != geometry.Pt(0, 0) {
				t.Errorf("starts at %v, want origin", c.Point(0))
			}
			if c.Point(-1) != tt.wantEnd {
				t.Errorf("ends at %v, want %v", c.Point(-1), tt.wantEnd)
			}
			for _, p := range c.Flatten() {
				if p.Y < 0 || p.Y > g.amplitude {
					t.Errorf("point %v outside amplitude band [0, %d]", p, g.amplitude)
				}
			}
		})
	}
}

func TestGenerateTargetBaseline(t *testing.T) {
	g := singleParams(CornerRound)
	g.targetBase = 300

	c, _ := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, TypeSingle, 0, g)

	// top stretches to (300 - 2*25 - 2*25) / 2 = 100
	if c.Point(4) != geometry.Pt(150, 200) {
		t.Errorf("top ends at %v, want (150, 200)", c.Point(4))
	}
	if c.Point(-1) != geometry.Pt(200, 0) {
		t.Errorf("shape ends at %v, want (200, 0)", c.Point(-1))
	}
	if c.PointCount() != 8 {
		t.Errorf("PointCount = %d, want 8", c.PointCount())
	}
}

func TestGenerateDegenerate(t *testing.T) {
	g := singleParams(CornerRound)

	for _, typ := range []Type{TypeStart, TypeTurn, TypeFinish, TypeSingle, TypeEmpty} {
		c, _ := generate(geometry.Pt(5, 5), geometry.Point{}, false, typ, 0, g)
		if c.PointCount() == 0 {
			t.Errorf("%s: zero direction produced no points", typ)
		}
	}

	g.amplitude = 0
	c, cr := generate(geometry.Pt(0, 0), geometry.Pt(1000, 0), false, TypeSingle, 0, g)
	if cr != 0 {
		t.Errorf("zero amplitude corner radius = %d, want 0", cr)
	}
	if c.PointCount() == 0 {
		t.Error("zero amplitude produced no points")
	}
}

func TestGenerateDual(t *testing.T) {
	g := genParams{style: CornerRound, dual: true, cornerRadius: 50, spacing: 140, amplitude: 200}
	base := baseline(1000)

	for _, typ := range []Type{TypeStart, TypeTurn, TypeFinish, TypeSingle} {
		for _, side := range []bool{false, true} {
			a, _ := generate(base.A, base.Vector(), side, typ, 20, g)
			b, _ := generate(base.A, base.Vector(), side, typ, -20, g)

			first := midpoint(a.Point(0), b.Point(0))
			if first != base.A {
				t.Errorf("%s side=%v: first midpoint %v, want %v", typ, side, first, base.A)
			}
			last := midpoint(a.Point(-1), b.Point(-1))
			if !base.Contains(last) {
				t.Errorf("%s side=%v: last midpoint %v is off the baseline", typ, side, last)
			}
		}
	}
}
