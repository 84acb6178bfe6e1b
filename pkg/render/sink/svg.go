package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/render"
)

const (
	trackColor    = "#c83434"
	coupledColor  = "#3465a4"
	baselineColor = "#888a85"
	obstacleColor = "#4e9a06"
	outlineColor  = "#c4a000"
	background    = "#1e1e1e"
)

var unitColors = map[string]string{
	"start":  "#ef2929",
	"turn":   "#fcaf3e",
	"finish": "#ad7fa8",
	"single": "#729fcf",
	"empty":  "#888a85",
	"corner": "#eeeeec",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	baseline   bool
	obstacles  bool
	unitColors bool
	margin     float64
	pixelWidth float64
}

// WithBaseline draws the untuned path as a thin dashed line.
func WithBaseline() SVGOption { return func(r *svgRenderer) { r.baseline = true } }

// WithObstacles draws the board obstacles and outline.
func WithObstacles() SVGOption { return func(r *svgRenderer) { r.obstacles = true } }

// WithUnitColors colors every meander unit by its type instead of drawing
// the tuned lines in a single color.
func WithUnitColors() SVGOption { return func(r *svgRenderer) { r.unitColors = true } }

// WithMargin sets the margin around the drawing as a fraction of its larger
// dimension (default 0.05).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithPixelWidth sets the width attribute of the document (default 1200).
func WithPixelWidth(w float64) SVGOption { return func(r *svgRenderer) { r.pixelWidth = w } }

// RenderSVG draws the scene as an SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	b := s.Bounds()
	pad := r.margin * math.Max(b.Width(), b.Height())
	if pad == 0 {
		pad = 1
	}
	x, y := b.Min.X-pad, b.Min.Y-pad
	w, h := b.Width()+2*pad, b.Height()+2*pad
	pw := r.pixelWidth
	ph := pw * h / w

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.0f %.0f %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		x, y, w, h, pw, ph)
	if s.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.Title))
	}
	fmt.Fprintf(&buf, `  <rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s"/>`+"\n", x, y, w, h, background)

	tw := max(s.TrackWidth, 1)

	if r.obstacles {
		renderObstacles(&buf, s, pad)
	}
	if r.baseline && s.Baseline.PointCount() > 1 {
		sw := max(tw/4, 1)
		fmt.Fprintf(&buf, `  <path class="baseline" d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-dasharray="%d %d"/>`+"\n",
			pathData(s.Baseline), baselineColor, sw, 4*sw, 2*sw)
	}

	if r.unitColors && len(s.Units) > 0 {
		renderUnits(&buf, s.Units, tw)
	} else {
		renderLines(&buf, s.Lines, tw)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{margin: 0.05, pixelWidth: 1200}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderObstacles(buf *bytes.Buffer, s render.Scene, pad float64) {
	if s.Outline != nil {
		o := s.Outline.Rect()
		fmt.Fprintf(buf, `  <rect class="outline" x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="none" stroke="%s" stroke-width="%.0f"/>`+"\n",
			o.Min.X, o.Min.Y, o.Width(), o.Height(), outlineColor, math.Max(pad/20, 1))
	}
	for _, o := range s.Obstacles {
		fmt.Fprintf(buf, `  <line class="obstacle" x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%d" stroke-linecap="round"/>`+"\n",
			o.A.X, o.A.Y, o.B.X, o.B.Y, obstacleColor, max(o.Width, 1))
	}
}

func renderLines(buf *bytes.Buffer, lines []geometry.Chain, width int) {
	for i, c := range lines {
		if c.PointCount() < 2 {
			continue
		}
		color := trackColor
		if i > 0 {
			color = coupledColor
		}
		fmt.Fprintf(buf, `  <path class="track" id="line-%d" d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			i, pathData(c), color, width)
	}
}

func renderUnits(buf *bytes.Buffer, units []render.Unit, width int) {
	for i, u := range units {
		color, ok := unitColors[u.Type]
		if !ok {
			color = trackColor
		}
		for _, c := range u.Chains {
			if c.PointCount() < 2 {
				continue
			}
			fmt.Fprintf(buf, `  <path class="unit %s" data-unit="%d" d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
				u.Type, i, pathData(c), color, width)
		}
	}
}

// pathData converts a chain to SVG path data. Arc edges become elliptical
// arc commands; a positive sweep rotates from +X toward +Y, which is the
// SVG sweep-flag direction.
func pathData(c geometry.Chain) string {
	var buf bytes.Buffer
	p0 := c.Point(0)
	fmt.Fprintf(&buf, "M%d %d", p0.X, p0.Y)

	for i := 0; i < c.SegmentCount(); i++ {
		end := c.Point(i + 1)
		a := c.ArcAt(i)
		if a == nil || a.IsDegenerate() {
			fmt.Fprintf(&buf, " L%d %d", end.X, end.Y)
			continue
		}
		r := a.Radius()
		fmt.Fprintf(&buf, " A%.0f %.0f 0 %d %d %d %d", r, r, flag(a.LargeArc()), flag(a.Angle > 0), end.X, end.Y)
	}
	return buf.String()
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
