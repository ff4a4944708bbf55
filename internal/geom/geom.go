// Package geom provides the 2D primitives shared by the scenario,
// collision and rendering layers: points, polylines and axis-aligned
// boxes in scene coordinates (metres).
package geom

import "math"

// Point is a position in scene coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rotate returns p rotated by theta radians about the origin.
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Width returns the X extent of the box.
func (b AABB) Width() float64 { return b.XMax - b.XMin }

// Height returns the Y extent of the box.
func (b AABB) Height() float64 { return b.YMax - b.YMin }

// Contains reports whether p lies inside or on the boundary of b.
func (b AABB) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Bounds returns the tight bounding box of pts. Returns a zero box
// when pts is empty.
func Bounds(pts []Point) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	b := AABB{XMin: pts[0].X, XMax: pts[0].X, YMin: pts[0].Y, YMax: pts[0].Y}
	for _, p := range pts[1:] {
		b.XMin = math.Min(b.XMin, p.X)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	return b
}

// SquareViewport returns the square box that contains pts padded by
// margin on every side. The longer padded axis keeps its extent; the
// shorter axis is widened symmetrically about its centre until the box
// is square, so the camera never distorts the scene aspect.
func SquareViewport(pts []Point, margin float64) AABB {
	b := Bounds(pts)
	b.XMin -= margin
	b.XMax += margin
	b.YMin -= margin
	b.YMax += margin

	side := math.Max(b.Width(), b.Height())
	if side == b.Width() {
		pad := (side - b.Height()) / 2
		b.YMin -= pad
		b.YMax += pad
	} else {
		pad := (side - b.Width()) / 2
		b.XMin -= pad
		b.XMax += pad
	}
	return b
}

// Diffs returns the per-segment deltas of a polyline: out[i] is
// pts[i+1]-pts[i]. Used for direction markers along trajectories.
func Diffs(pts []Point) []Point {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Point, len(pts)-1)
	for i := range out {
		out[i] = pts[i+1].Sub(pts[i])
	}
	return out
}
