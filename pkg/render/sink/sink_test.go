package sink

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/render"
)

func testScene() render.Scene {
	c := geometry.NewChain(geometry.Pt(0, 0))
	c.AppendArc(geometry.NewArc(geometry.Pt(0, 100), geometry.Pt(0, 0), math.Pi/2))
	c.Append(geometry.Pt(300, 100))

	return render.Scene{
		Title:      "CLK <main>",
		TrackWidth: 10,
		Lines:      []geometry.Chain{c},
		Baseline:   geometry.NewChain(geometry.Pt(0, 0), geometry.Pt(300, 100)),
		Units: []render.Unit{
			{Type: "corner", Chains: []geometry.Chain{geometry.NewChain(geometry.Pt(0, 0))}},
			{Type: "single", Chains: []geometry.Chain{c}},
		},
		Obstacles: []board.Obstacle{{A: geometry.Pt(0, 200), B: geometry.Pt(300, 200), Width: 20}},
	}
}

func TestPathData(t *testing.T) {
	s := testScene()
	got := pathData(s.Lines[0])
	want := "M0 0 A100 100 0 0 1 100 100 L300 100"
	if got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}

	cw := geometry.NewChain(geometry.Pt(0, 0))
	cw.AppendArc(geometry.NewArc(geometry.Pt(0, 100), geometry.Pt(0, 0), -math.Pi/2))
	if got := pathData(cw); !strings.Contains(got, " 0 0 0 ") {
		t.Errorf("pathData() = %q, want a zero sweep flag for a negative angle", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("RenderSVG() is not an SVG document:\n%s", svg)
	}
	if !strings.Contains(svg, "<title>CLK &lt;main&gt;</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(svg, `id="line-0"`) {
		t.Error("tuned line not drawn")
	}
	if strings.Contains(svg, `class="obstacle"`) {
		t.Error("obstacles drawn without WithObstacles")
	}
	if strings.Contains(svg, `class="baseline"`) {
		t.Error("baseline drawn without WithBaseline")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithObstacles(), WithBaseline(), WithUnitColors()))

	for _, want := range []string{`class="obstacle"`, `class="baseline"`, `class="unit single"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s", want)
		}
	}
	// single-point corner units are not drawn
	if strings.Contains(svg, `class="unit corner"`) {
		t.Error("zero-length corner drawn")
	}
	if strings.Contains(svg, `id="line-0"`) {
		t.Error("WithUnitColors should replace the plain line")
	}
}

func TestRenderSVGEmptyScene(t *testing.T) {
	svg := string(RenderSVG(render.Scene{}))
	if !strings.Contains(svg, `viewBox=`) {
		t.Errorf("RenderSVG() of an empty scene = %q", svg)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testScene())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.TrackWidth != 10 {
		t.Errorf("TrackWidth = %d, want 10", out.TrackWidth)
	}
	if len(out.Lines) != 1 || out.Lines[0].ArcAt(0) == nil {
		t.Errorf("Lines = %+v, want one line starting with an arc", out.Lines)
	}
	if len(out.Units) != 2 || out.Units[1].Type != "single" {
		t.Errorf("Units = %+v", out.Units)
	}
	// obstacle at y=200 with width 20 is outside the tracks; bounds grow by half the track width
	if out.Bounds.MaxY != 205 || out.Bounds.MinX != -5 {
		t.Errorf("Bounds = %+v, want min_x -5, max_y 205", out.Bounds)
	}
}
