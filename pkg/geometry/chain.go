package geometry

import (
	"encoding/json"
	"math"

	"github.com/jbeda/geom"
)

// Chain is an open polyline. Edge i joins Point(i) and Point(i+1) and is
// either a straight segment or, when ArcAt(i) is non-nil, a circular arc.
//
// The zero value is an empty chain ready to use.
type Chain struct {
	points []Point
	arcs   []*Arc
}

// NewChain creates a straight-edged chain through pts.
func NewChain(pts ...Point) Chain {
	var c Chain
	for _, p := range pts {
		c.Append(p)
	}
	return c
}

// Append adds a straight edge to p. Appending the current end point is a no-op.
func (c *Chain) Append(p Point) {
	if n := len(c.points); n > 0 && c.points[n-1] == p {
		return
	}
	if len(c.points) > 0 {
		c.arcs = append(c.arcs, nil)
	}
	c.points = append(c.points, p)
}

// AppendArc adds an arc edge. The chain is first extended to the arc's start
// point. A degenerate arc only contributes its start point.
func (c *Chain) AppendArc(a Arc) {
	c.Append(a.Start)
	if a.IsDegenerate() {
		return
	}
	arc := a
	c.arcs = append(c.arcs, &arc)
	c.points = append(c.points, a.End)
}

// AppendChain appends every edge of o, preserving arcs.
func (c *Chain) AppendChain(o Chain) {
	if len(o.points) == 0 {
		return
	}
	c.Append(o.points[0])
	for i, a := range o.arcs {
		if a != nil {
			c.AppendArc(*a)
			continue
		}
		c.Append(o.points[i+1])
	}
}

// Clear removes all points.
func (c *Chain) Clear() {
	c.points = c.points[:0]
	c.arcs = c.arcs[:0]
}

// Clone returns a deep copy of the chain.
func (c Chain) Clone() Chain {
	out := Chain{points: append([]Point(nil), c.points...)}
	if c.arcs == nil {
		return out
	}
	out.arcs = make([]*Arc, len(c.arcs))
	for i, a := range c.arcs {
		if a != nil {
			cp := *a
			out.arcs[i] = &cp
		}
	}
	return out
}

// PointCount returns the number of vertices.
func (c Chain) PointCount() int { return len(c.points) }

// SegmentCount returns the number of edges.
func (c Chain) SegmentCount() int { return len(c.arcs) }

// Point returns vertex i. Negative indices count from the end, so Point(-1)
// is the last vertex.
func (c Chain) Point(i int) Point {
	if i < 0 {
		i += len(c.points)
	}
	return c.points[i]
}

// Points returns a copy of the vertices.
func (c Chain) Points() []Point {
	return append([]Point(nil), c.points...)
}

// Segment returns edge i as a straight segment between its endpoints.
func (c Chain) Segment(i int) Seg {
	return Seg{A: c.points[i], B: c.points[i+1]}
}

// ArcAt returns the arc of edge i, or nil for a straight edge.
func (c Chain) ArcAt(i int) *Arc {
	return c.arcs[i]
}

// Length returns the total length, measuring arcs along their curve.
func (c Chain) Length() float64 {
	var l float64
	for i, a := range c.arcs {
		if a != nil {
			l += a.Length()
			continue
		}
		l += c.points[i].Distance(c.points[i+1])
	}
	return l
}

// Flatten returns the chain with arc edges replaced by chords.
func (c Chain) Flatten() []Point {
	if len(c.points) == 0 {
		return nil
	}
	out := []Point{c.points[0]}
	push := func(p Point) {
		if out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	for i, a := range c.arcs {
		if a == nil {
			push(c.points[i+1])
			continue
		}
		for _, p := range a.Flatten()[1:] {
			push(p)
		}
	}
	return out
}

// FlatSegments returns the straight segments of the flattened chain.
func (c Chain) FlatSegments() []Seg {
	pts := c.Flatten()
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Seg, len(pts)-1)
	for i := range segs {
		segs[i] = Seg{A: pts[i], B: pts[i+1]}
	}
	return segs
}

// Distance returns the minimum distance between the chain and s.
// An empty chain is infinitely far away; a single point chain measures from
// that point.
func (c Chain) Distance(s Seg) float64 {
	switch len(c.points) {
	case 0:
		return math.Inf(1)
	case 1:
		return s.Distance(c.points[0])
	}
	d := math.Inf(1)
	for _, e := range c.FlatSegments() {
		d = math.Min(d, e.SegDistance(s))
		if d == 0 {
			return 0
		}
	}
	return d
}

// Collide reports whether s touches the chain or comes closer than clearance.
func (c Chain) Collide(s Seg, clearance int) bool {
	d := c.Distance(s)
	return d == 0 || d < float64(clearance)
}

// Mirror returns the chain reflected about the line through axis.
func (c Chain) Mirror(axis Seg) Chain {
	out := Chain{
		points: make([]Point, len(c.points)),
		arcs:   make([]*Arc, len(c.arcs)),
	}
	for i, p := range c.points {
		out.points[i] = axis.Mirror(p)
	}
	for i, a := range c.arcs {
		if a != nil {
			m := a.Mirror(axis)
			m.Start, m.End = out.points[i], out.points[i+1]
			out.arcs[i] = &m
		}
	}
	return out
}

// Bounds returns the bounding rectangle of the flattened chain.
func (c Chain) Bounds() geom.Rect {
	pts := c.Flatten()
	if len(pts) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: pts[0].Coord(), Max: pts[0].Coord()}
	for _, p := range pts[1:] {
		r.ExpandToContainCoord(p.Coord())
	}
	return r
}

type chainEdgeJSON struct {
	Edge int `json:"edge"`
	Arc
}

type chainJSON struct {
	Points []Point         `json:"points"`
	Arcs   []chainEdgeJSON `json:"arcs,omitempty"`
}

// MarshalJSON encodes the chain as its vertex list plus the arc edges.
func (c Chain) MarshalJSON() ([]byte, error) {
	out := chainJSON{Points: c.points}
	if out.Points == nil {
		out.Points = []Point{}
	}
	for i, a := range c.arcs {
		if a != nil {
			out.Arcs = append(out.Arcs, chainEdgeJSON{Edge: i, Arc: *a})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a chain written by MarshalJSON.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var in chainJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.points = in.Points
	c.arcs = nil
	if len(in.Points) > 1 {
		c.arcs = make([]*Arc, len(in.Points)-1)
	}
	for _, e := range in.Arcs {
		if e.Edge < 0 || e.Edge >= len(c.arcs) {
			continue
		}
		a := e.Arc
		c.arcs[e.Edge] = &a
	}
	return nil
}
