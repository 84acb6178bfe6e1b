package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Seg is a directed line segment from A to B.
type Seg struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// NewSeg creates a segment from a to b.
func NewSeg(a, b Point) Seg {
	return Seg{A: a, B: b}
}

// Vector returns B - A.
func (s Seg) Vector() Point { return s.B.Sub(s.A) }

// Length returns the segment length rounded to board units.
func (s Seg) Length() int { return round(s.Vector().Length()) }

// IsDegenerate reports whether the segment has zero length.
func (s Seg) IsDegenerate() bool { return s.A == s.B }

// LineProject projects p onto the infinite line through the segment.
// A degenerate segment projects everything onto A.
func (s Seg) LineProject(p Point) Point {
	d := s.Vector()
	l2 := d.SquaredLength()
	if l2 == 0 {
		return s.A
	}
	t := float64(p.Sub(s.A).Dot(d)) / float64(l2)
	return FromCoord(s.A.Coord().Plus(d.Coord().Times(t)))
}

// NearestPoint returns the point of the segment closest to p.
func (s Seg) NearestPoint(p Point) geom.Coord {
	d := s.Vector()
	l2 := d.SquaredLength()
	if l2 == 0 {
		return s.A.Coord()
	}
	t := float64(p.Sub(s.A).Dot(d)) / float64(l2)
	t = math.Max(0, math.Min(1, t))
	return s.A.Coord().Plus(d.Coord().Times(t))
}

// Distance returns the distance from p to the segment.
func (s Seg) Distance(p Point) float64 {
	return s.NearestPoint(p).Minus(p.Coord()).Magnitude()
}

// Contains reports whether p lies on the segment, allowing for one unit of
// rounding error.
func (s Seg) Contains(p Point) bool {
	return s.Distance(p) <= 1
}

// Intersects reports whether two segments touch or cross.
func (s Seg) Intersects(o Seg) bool {
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(o, s.A):
		return true
	case d2 == 0 && onSegment(o, s.B):
		return true
	case d3 == 0 && onSegment(s, o.A):
		return true
	case d4 == 0 && onSegment(s, o.B):
		return true
	}
	return false
}

// SegDistance returns the minimum distance between two segments.
func (s Seg) SegDistance(o Seg) float64 {
	if s.Intersects(o) {
		return 0
	}
	return math.Min(
		math.Min(s.Distance(o.A), s.Distance(o.B)),
		math.Min(o.Distance(s.A), o.Distance(s.B)),
	)
}

// ApproxParallel reports whether o is parallel to s: both endpoints of o have
// the same signed distance to the line through s, within one board unit.
// A degenerate s is never parallel to anything.
func (s Seg) ApproxParallel(o Seg) bool {
	d := s.Vector()
	n := d.Length()
	if n == 0 {
		return false
	}
	dist1 := float64(d.Cross(o.A.Sub(s.A))) / n
	dist2 := float64(d.Cross(o.B.Sub(s.A))) / n
	return math.Abs(dist1-dist2) <= 1
}

// Mirror reflects p about the infinite line through the segment.
func (s Seg) Mirror(p Point) Point {
	return FromCoord(s.MirrorCoord(p.Coord()))
}

// MirrorCoord reflects c about the infinite line through the segment.
func (s Seg) MirrorCoord(c geom.Coord) geom.Coord {
	d := s.Vector().Coord()
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return c
	}
	a := s.A.Coord()
	rel := c.Minus(a)
	t := (rel.X*d.X + rel.Y*d.Y) / l2
	foot := a.Plus(d.Times(t))
	return foot.Times(2).Minus(c)
}

func orientation(a, b, c Point) int64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(s Seg, p Point) bool {
	return min(s.A.X, s.B.X) <= p.X && p.X <= max(s.A.X, s.B.X) &&
		min(s.A.Y, s.B.Y) <= p.Y && p.Y <= max(s.A.Y, s.B.Y)
}
