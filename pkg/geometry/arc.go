package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// ArcChordAngle is the maximum angle subtended by one chord when an arc is
// flattened into straight segments.
const ArcChordAngle = math.Pi / 16

// Arc is a circular arc from Start to End around Center.
//
// Angle is the signed sweep in radians. A positive angle rotates from the
// +X axis toward the +Y axis. End is stored rounded; Start and End are the
// authoritative endpoints for chain continuity.
type Arc struct {
	Center Point   `json:"center"`
	Start  Point   `json:"start"`
	End    Point   `json:"end"`
	Angle  float64 `json:"angle"`
}

// NewArc creates an arc around center starting at start and sweeping angle
// radians.
func NewArc(center, start Point, angle float64) Arc {
	end := rotateAbout(start.Coord(), center.Coord(), angle)
	return Arc{Center: center, Start: start, End: FromCoord(end), Angle: angle}
}

// ArcFromEnds creates the minor arc around center that runs from start to end.
func ArcFromEnds(center, start, end Point) Arc {
	a := start.Sub(center)
	b := end.Sub(center)
	angle := math.Atan2(float64(a.Cross(b)), float64(a.Dot(b)))
	return Arc{Center: center, Start: start, End: end, Angle: angle}
}

// ArcThrough creates an arc from start to end with the given signed sweep.
// The center is derived from the chord; the endpoints are kept exactly.
// A zero sweep or coincident endpoints produce a degenerate arc.
func ArcThrough(start, end Point, sweep float64) Arc {
	if sweep == 0 || start == end {
		return Arc{Center: start, Start: start, End: end}
	}
	chord := end.Sub(start).Coord()
	half := chord.Magnitude() / 2
	mid := start.Coord().Plus(chord.Times(0.5))
	dist := half / math.Tan(sweep/2)
	center := mid.Plus(Perp(chord.Unit()).Times(dist))
	return Arc{Center: FromCoord(center), Start: start, End: end, Angle: sweep}
}

// Radius returns the distance from the center to the start point.
func (a Arc) Radius() float64 {
	return a.Start.Distance(a.Center)
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return a.Radius() * math.Abs(a.Angle)
}

// IsDegenerate reports whether the arc has no extent.
func (a Arc) IsDegenerate() bool {
	return a.Angle == 0 || a.Start == a.Center || a.Start == a.End
}

// Mirror reflects the arc about the line through axis. The sweep direction
// is reversed.
func (a Arc) Mirror(axis Seg) Arc {
	return Arc{
		Center: axis.Mirror(a.Center),
		Start:  axis.Mirror(a.Start),
		End:    axis.Mirror(a.End),
		Angle:  -a.Angle,
	}
}

// Translate moves the arc by d.
func (a Arc) Translate(d Point) Arc {
	a.Center = a.Center.Add(d)
	a.Start = a.Start.Add(d)
	a.End = a.End.Add(d)
	return a
}

// Flatten approximates the arc with points spaced at most ArcChordAngle
// apart. The result starts at Start and ends at End.
func (a Arc) Flatten() []Point {
	if a.IsDegenerate() {
		return []Point{a.Start, a.End}
	}
	n := int(math.Ceil(math.Abs(a.Angle) / ArcChordAngle))
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	pts = append(pts, a.Start)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		p := FromCoord(rotateAbout(a.Start.Coord(), a.Center.Coord(), a.Angle*t))
		if p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	if a.End != pts[len(pts)-1] {
		pts = append(pts, a.End)
	}
	return pts
}

// LargeArc reports whether the arc sweeps more than half a turn.
func (a Arc) LargeArc() bool {
	return math.Abs(a.Angle) > math.Pi
}

func rotateAbout(p, center geom.Coord, angle float64) geom.Coord {
	sin, cos := math.Sincos(angle)
	rel := p.Minus(center)
	return center.Plus(geom.Coord{
		X: rel.X*cos - rel.Y*sin,
		Y: rel.X*sin + rel.Y*cos,
	})
}
