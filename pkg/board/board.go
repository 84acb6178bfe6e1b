// Package board provides a host-side fit oracle for the meander engine.
//
// A [Board] is a minimal model of the copper around a tuned net: a set of
// obstacle segments with widths and an optional keep-in outline. An
// [Oracle] built from it accepts a meander shape when the shape stays
// inside the outline, keeps clearance from every obstacle and does not run
// into the meanders already placed on its own line.
package board

import (
	"github.com/jbeda/geom"

	"github.com/matzehuels/meander/pkg/geometry"
	"github.com/matzehuels/meander/pkg/meander"
)

// Obstacle is a straight copper segment (track, pad edge, keep-out line).
type Obstacle struct {
	A     geometry.Point `json:"a" toml:"a"`
	B     geometry.Point `json:"b" toml:"b"`
	Width int            `json:"width" toml:"width"`
}

// Seg returns the obstacle centerline.
func (o Obstacle) Seg() geometry.Seg { return geometry.NewSeg(o.A, o.B) }

// Outline is an axis-aligned keep-in area.
type Outline struct {
	Min geometry.Point `json:"min" toml:"min"`
	Max geometry.Point `json:"max" toml:"max"`
}

// Rect converts the outline to a floating-point rectangle.
func (o Outline) Rect() geom.Rect {
	return geom.Rect{Min: o.Min.Coord(), Max: o.Max.Coord()}
}

// Board holds everything a tuned net must keep clear of.
type Board struct {
	Obstacles []Obstacle `json:"obstacles,omitempty" toml:"obstacle"`
	Outline   *Outline   `json:"outline,omitempty" toml:"outline"`
}

// New creates a board with the given obstacles.
func New(obstacles ...Obstacle) *Board {
	return &Board{Obstacles: obstacles}
}

// Oracle judges meander shapes for one net. It is not safe for concurrent
// use; create one per net.
type Oracle struct {
	board     *Board
	line      *meander.Line
	width     int
	clearance int

	checks   int
	rejected int
}

// NewOracle creates an oracle for a track of the given width. Attach the
// line being tuned before meandering so that self-intersections are caught.
func (b *Board) NewOracle(width, clearance int) *Oracle {
	if b == nil {
		b = &Board{}
	}
	return &Oracle{board: b, width: width, clearance: clearance}
}

// Attach sets the line whose placed meanders new shapes must avoid.
func (o *Oracle) Attach(l *meander.Line) { o.line = l }

// Clearance implements meander.Oracle.
func (o *Oracle) Clearance() int { return o.clearance }

// Checks returns how many shapes were judged.
func (o *Oracle) Checks() int { return o.checks }

// Rejected returns how many shapes were refused.
func (o *Oracle) Rejected() int { return o.rejected }

// CheckFit implements meander.Oracle.
func (o *Oracle) CheckFit(s *meander.Shape) bool {
	o.checks++
	if o.fits(s) {
		return true
	}
	o.rejected++
	return false
}

func (o *Oracle) fits(s *meander.Shape) bool {
	if o.line != nil && !o.line.CheckSelfIntersections(s, o.width+o.clearance) {
		return false
	}

	lines := 1
	if s.IsDual() {
		lines = 2
	}

	for i := 0; i < lines; i++ {
		c := s.Chain(i)
		if c.PointCount() == 0 {
			continue
		}
		if o.board.Outline != nil {
			keep := o.board.Outline.Rect()
			if !keep.ContainsRect(c.Bounds()) {
				return false
			}
		}
		for _, ob := range o.board.Obstacles {
			gap := o.width/2 + ob.Width/2 + o.clearance
			if c.Collide(ob.Seg(), gap) {
				return false
			}
		}
	}
	return true
}

// Blocked is an oracle that rejects everything, as on a fully obstructed
// board.
type Blocked struct {
	Gap int
}

// CheckFit implements meander.Oracle.
func (Blocked) CheckFit(*meander.Shape) bool { return false }

// Clearance implements meander.Oracle.
func (b Blocked) Clearance() int { return b.Gap }
