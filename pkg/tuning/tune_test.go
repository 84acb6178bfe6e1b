package tuning

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/meander"
)

func TestTuneNetNoTarget(t *testing.T) {
	res, err := TuneNet(straightRequest(1000, 0))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}

	want := []meander.Type{
		meander.TypeCorner, meander.TypeStart,
		meander.TypeTurn, meander.TypeTurn, meander.TypeTurn,
		meander.TypeTurn, meander.TypeTurn, meander.TypeTurn,
		meander.TypeFinish, meander.TypeCorner,
	}
	if diff := cmp.Diff(want, unitTypes(res)); diff != "" {
		t.Errorf("unit types mismatch (-want +got):\n%s", diff)
	}
	if res.Status != StatusNone {
		t.Errorf("Status = %v, want none", res.Status)
	}
	if res.Stats.Meanders != 8 {
		t.Errorf("Stats.Meanders = %d, want 8", res.Stats.Meanders)
	}
	if res.Stats.Checks == 0 {
		t.Error("Stats.Checks = 0, oracle never consulted")
	}
	if res.BaselineLength != 1000 || res.Length <= 1000 {
		t.Errorf("BaselineLength = %v, Length = %v", res.BaselineLength, res.Length)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(res.Lines))
	}
	if c := res.Lines[0]; c.Point(0) != geometry.Pt(0, 0) || c.Point(-1) != geometry.Pt(1000, 0) {
		t.Errorf("line runs %v..%v", c.Point(0), c.Point(-1))
	}
}

func TestTuneNetTarget(t *testing.T) {
	res, err := TuneNet(straightRequest(1000, 1500))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}

	want := []meander.Type{
		meander.TypeCorner, meander.TypeStart, meander.TypeFinish,
		meander.TypeEmpty, meander.TypeEmpty, meander.TypeEmpty,
		meander.TypeEmpty, meander.TypeEmpty, meander.TypeEmpty,
		meander.TypeCorner,
	}
	if diff := cmp.Diff(want, unitTypes(res)); diff != "" {
		t.Errorf("unit types mismatch (-want +got):\n%s", diff)
	}
	if res.Status != StatusTuned {
		t.Errorf("Status = %v (length %v), want tuned", res.Status, res.Length)
	}
	if d := math.Abs(res.Delta()); d > 20 {
		t.Errorf("Delta() = %v, want within tolerance", res.Delta())
	}

	start, finish := res.Units[1], res.Units[2]
	if start.Amplitude >= 200 || start.Amplitude <= 50 {
		t.Errorf("start amplitude = %d, want reduced into (50, 200)", start.Amplitude)
	}
	if start.Amplitude != finish.Amplitude {
		t.Errorf("amplitudes %d and %d, want the overshoot spread evenly", start.Amplitude, finish.Amplitude)
	}

	// the first straight run picks up where the finish ended
	if got, want := res.Units[3].Chains[0].Point(0), finish.Chains[0].Point(-1); got != want {
		t.Errorf("empty run starts at %v, want %v", got, want)
	}
	if got := res.Units[3].Base; got != geometry.NewSeg(geometry.Pt(300, 0), geometry.Pt(325, 0)) {
		t.Errorf("empty run base = %v, want (300,0)-(325,0)", got)
	}
}

func TestTuneNetAlreadyLong(t *testing.T) {
	res, err := TuneNet(straightRequest(1000, 800))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}
	if res.Stats.Meanders != 0 {
		t.Errorf("Stats.Meanders = %d, want 0", res.Stats.Meanders)
	}
	if res.Status != StatusTooLong {
		t.Errorf("Status = %v, want too_long", res.Status)
	}
	if res.Length != 1000 {
		t.Errorf("Length = %v, want 1000", res.Length)
	}
}

func TestTuneNetUnreachable(t *testing.T) {
	res, err := TuneNet(straightRequest(1000, 100_000))
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}
	if res.Status != StatusTooShort {
		t.Errorf("Status = %v, want too_short", res.Status)
	}
	for _, u := range res.Units {
		if u.Type == meander.TypeEmpty {
			t.Errorf("unit at %v emptied although the target is out of reach", u.Base)
		}
	}
}

func TestTuneNetArc(t *testing.T) {
	req := straightRequest(0, 0)
	req.Path = []Vertex{{X: 0, Y: 0}, {X: 1000, Y: 0, Sweep: 90}, {X: 1500, Y: 500}}

	res, err := TuneNet(req)
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}

	wantBase := 1000 + 500*math.Pi/2
	if math.Abs(res.BaselineLength-wantBase) > 1e-9 {
		t.Errorf("BaselineLength = %v, want %v", res.BaselineLength, wantBase)
	}

	var arcs int
	for _, u := range res.Units {
		if u.Type == meander.TypeCorner && u.Chains[0].ArcAt(0) != nil {
			arcs++
		}
	}
	if arcs != 1 {
		t.Errorf("found %d arc units, want 1", arcs)
	}
	if got := res.Lines[0].Point(-1); got != geometry.Pt(1500, 500) {
		t.Errorf("line ends at %v, want (1500,500)", got)
	}
	if res.Length <= wantBase {
		t.Errorf("Length = %v, want more than the baseline", res.Length)
	}
}

func TestTuneNetDual(t *testing.T) {
	req := straightRequest(1000, 0)
	req.Dual = true
	req.Gap = 40

	res, err := TuneNet(req)
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}
	if len(res.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(res.Lines))
	}
	if got := res.Lines[0].Point(0); got != geometry.Pt(0, 20) {
		t.Errorf("first line starts at %v, want (0,20)", got)
	}
	if got := res.Lines[1].Point(0); got != geometry.Pt(0, -20) {
		t.Errorf("second line starts at %v, want (0,-20)", got)
	}
	if got := res.Lines[1].Point(-1); got != geometry.Pt(1000, -20) {
		t.Errorf("second line ends at %v, want (1000,-20)", got)
	}
	if res.Stats.Meanders == 0 {
		t.Error("pair was not meandered")
	}
	if res.CoupledLength <= 1000 {
		t.Errorf("CoupledLength = %v, want > 1000", res.CoupledLength)
	}
}

func TestTuneNetObstacle(t *testing.T) {
	req := straightRequest(1000, 0)
	req.Board = board.New(board.Obstacle{A: geometry.Pt(-1000, 150), B: geometry.Pt(2000, 150), Width: 10})

	res, err := TuneNet(req)
	if err != nil {
		t.Fatalf("TuneNet() error: %v", err)
	}
	if res.Stats.Rejected == 0 {
		t.Error("Stats.Rejected = 0, obstacle never pushed back")
	}
	for _, u := range res.Units {
		for _, p := range u.Chains[0].Flatten() {
			if p.Y > 150-20 {
				t.Fatalf("%s unit reaches %v, past the obstacle clearance", u.Type, p)
			}
		}
	}
}

func TestOffsetArcs(t *testing.T) {
	ccw := geometry.NewArc(geometry.Pt(0, 100), geometry.Pt(0, 0), math.Pi/2)
	left, right := offsetArcs(ccw, 10)
	if left.Start != geometry.Pt(0, 10) || right.Start != geometry.Pt(0, -10) {
		t.Errorf("ccw offsets start at %v and %v", left.Start, right.Start)
	}
	if left.Radius() != 90 || right.Radius() != 110 {
		t.Errorf("ccw radii = %v, %v, want 90, 110", left.Radius(), right.Radius())
	}

	cw := geometry.NewArc(geometry.Pt(0, -100), geometry.Pt(0, 0), -math.Pi/2)
	left, right = offsetArcs(cw, 10)
	if left.Start != geometry.Pt(0, 10) || right.Start != geometry.Pt(0, -10) {
		t.Errorf("cw offsets start at %v and %v", left.Start, right.Start)
	}
	if left.Radius() != 110 || right.Radius() != 90 {
		t.Errorf("cw radii = %v, %v, want 110, 90", left.Radius(), right.Radius())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		length            float64
		target, tolerance int64
		want              Status
	}{
		{1000, 0, 0, StatusNone},
		{900, 1000, 50, StatusTooShort},
		{950, 1000, 50, StatusTuned},
		{1050, 1000, 50, StatusTuned},
		{1051, 1000, 50, StatusTooLong},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.length, tt.target, tt.tolerance); got != tt.want {
			t.Errorf("StatusFor(%v, %d, %d) = %v, want %v", tt.length, tt.target, tt.tolerance, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusNone, StatusTooShort, StatusTuned, StatusTooLong} {
		text, _ := s.MarshalText()
		var got Status
		if err := got.UnmarshalText(text); err != nil || got != s {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, s)
		}
	}
	var s Status
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) should fail")
	}
}
