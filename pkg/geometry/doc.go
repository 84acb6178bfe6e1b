// Package geometry provides the integer 2D primitives used by the meander
// engine: points, directed segments, circular arcs and line chains.
//
// # Coordinates
//
// Board coordinates are integers (typically nanometers). Intermediate
// construction happens in floating point using [geom.Coord] vectors from
// github.com/jbeda/geom and is rounded back to [Point] whenever a vertex is
// committed to a [Chain]. Rounding is symmetric about zero, so mirroring a
// chain about an axis-aligned baseline is exact.
//
// # Chains
//
// A [Chain] is an open polyline whose edges are either straight segments or
// circular arcs. Appending a point equal to the current end point is a no-op,
// which lets callers concatenate chains that share endpoints without creating
// zero-length edges:
//
//	var c geometry.Chain
//	c.Append(geometry.Pt(0, 0))
//	c.Append(geometry.Pt(100, 0))
//	c.AppendArc(geometry.NewArc(geometry.Pt(100, 50), geometry.Pt(100, 0), math.Pi/2))
//	fmt.Println(c.Length())
//
// Collision queries flatten arcs into short chords (see [ArcChordAngle]).
package geometry
