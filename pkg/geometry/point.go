package geometry

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Point is an integer 2D point or vector in board units.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) int64 {
	return int64(p.X)*int64(q.Y) - int64(p.Y)*int64(q.X)
}

// SquaredLength returns the squared length of the vector.
func (p Point) SquaredLength() int64 {
	return p.Dot(p)
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Resize returns a vector with the direction of p and the given length.
// A negative length flips the direction. The zero vector stays zero.
func (p Point) Resize(length int) Point {
	return FromCoord(Resize(p.Coord(), float64(length)))
}

// Perpendicular returns p rotated by 90 degrees: (x, y) -> (-y, x).
func (p Point) Perpendicular() Point {
	return Point{X: -p.Y, Y: p.X}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Coord converts p to a floating-point vector.
func (p Point) Coord() geom.Coord {
	return geom.Coord{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// FromCoord rounds a floating-point vector to the nearest integer point.
func FromCoord(c geom.Coord) Point {
	return Point{X: round(c.X), Y: round(c.Y)}
}

// Resize returns c scaled to the given length. The zero vector stays zero.
func Resize(c geom.Coord, length float64) geom.Coord {
	if c.X == 0 && c.Y == 0 {
		return c
	}
	return c.Unit().Times(length)
}

// Perp rotates c by 90 degrees: (x, y) -> (-y, x).
func Perp(c geom.Coord) geom.Coord {
	return geom.Coord{X: -c.Y, Y: c.X}
}

func round(v float64) int {
	return int(math.Round(v))
}
