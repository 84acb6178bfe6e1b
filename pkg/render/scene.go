package render

import (
	"github.com/jbeda/geom"

	"github.com/matzehuels/meander/pkg/board"
	"github.com/matzehuels/meander/pkg/geometry"
)

// Scene is everything a sink draws for one tuned net.
type Scene struct {
	Title string

	// TrackWidth is the drawn width of the tuned lines.
	TrackWidth int

	// Lines holds the tuned output, one chain per line of the net.
	Lines []geometry.Chain

	// Baseline is the untuned path.
	Baseline geometry.Chain

	// Units are the individual meander units in placement order.
	Units []Unit

	Obstacles []board.Obstacle
	Outline   *board.Outline
}

// Unit is one placed meander unit.
type Unit struct {
	Type   string
	Chains []geometry.Chain
}

// Bounds returns the bounding box of every drawable element, grown by half
// the track width so strokes are not clipped.
func (s Scene) Bounds() geom.Rect {
	var (
		r     geom.Rect
		empty = true
	)
	add := func(o geom.Rect) {
		if empty {
			r, empty = o, false
			return
		}
		r.ExpandToContainRect(o)
	}

	for _, c := range s.Lines {
		if c.PointCount() > 0 {
			add(c.Bounds())
		}
	}
	if s.Baseline.PointCount() > 0 {
		add(s.Baseline.Bounds())
	}
	for _, o := range s.Obstacles {
		add(geometry.NewChain(o.A, o.B).Bounds())
	}
	if s.Outline != nil {
		add(s.Outline.Rect())
	}

	if empty {
		return geom.Rect{}
	}
	half := float64(s.TrackWidth) / 2
	r.Min = r.Min.Minus(geom.Coord{X: half, Y: half})
	r.Max = r.Max.Plus(geom.Coord{X: half, Y: half})
	return r
}
