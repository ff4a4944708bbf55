// Package collision implements the geometric checks behind the
// validation gate: time-indexed convex-polygon collision between the
// ego vehicle's occupancy and the scenario's obstacles, plus a derived
// road-boundary obstacle.
package collision

import (
	"math"

	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

// Polygon is a convex polygon in scene coordinates, counter-clockwise.
type Polygon []geom.Point

// TimedPolygon is an occupancy polygon valid at one time step.
type TimedPolygon struct {
	Step int
	Poly Polygon
}

// Checker holds a scenario's obstacles in a form ready for repeated
// collision queries. The road boundary is a separate obstacle kind
// with its own query (Boundary.Outside), so the gate can report the
// two collision flags independently.
type Checker struct {
	static  []Polygon
	dynamic map[int][]Polygon // step -> obstacle polygons at that step
}

// NewChecker registers all of a scenario's obstacles. Dynamic
// obstacles contribute one polygon per recorded step; static
// obstacle polygons are assumed convex.
func NewChecker(scn *scenario.Scenario) *Checker {
	c := &Checker{dynamic: make(map[int][]Polygon)}
	for _, so := range scn.StaticObstacles {
		c.static = append(c.static, Polygon(so.Polygon))
	}
	for i := range scn.DynamicObstacles {
		o := &scn.DynamicObstacles[i]
		for _, st := range o.States {
			poly := Polygon(o.Shape.Corners(st.Position, st.Heading))
			c.dynamic[st.TimeStep] = append(c.dynamic[st.TimeStep], poly)
		}
	}
	return c
}

// Collides reports whether any occupancy polygon intersects a
// registered obstacle at its time step.
func (c *Checker) Collides(occ []TimedPolygon) bool {
	for _, tp := range occ {
		for _, s := range c.static {
			if convexIntersects(tp.Poly, s) {
				return true
			}
		}
		for _, d := range c.dynamic[tp.Step] {
			if convexIntersects(tp.Poly, d) {
				return true
			}
		}
	}
	return false
}

// EgoOccupancy builds the ego vehicle's occupancy polygons over a
// trajectory for the given body shape.
func EgoOccupancy(traj *trajectory.Trajectory, shape scenario.Rectangle) []TimedPolygon {
	states := traj.States()
	occ := make([]TimedPolygon, len(states))
	for i, s := range states {
		occ[i] = TimedPolygon{
			Step: s.TimeStep,
			Poly: Polygon(shape.Corners(s.Position, s.Heading)),
		}
	}
	return occ
}

// Boundary is the derived road-boundary obstacle: the drivable surface
// as a set of convex quads spanned between lanelet bounds. A polygon
// "collides" with the boundary when any of its corners lies on no quad.
type Boundary struct {
	quads []Polygon
}

// RoadBoundary derives the boundary obstacle from a scenario's
// lanelets. Scenarios without lanelets yield a nil boundary (open
// plane, nothing to leave).
func RoadBoundary(scn *scenario.Scenario) *Boundary {
	var quads []Polygon
	for _, ll := range scn.Lanelets {
		n := len(ll.Left)
		if len(ll.Right) < n {
			n = len(ll.Right)
		}
		for i := 0; i+1 < n; i++ {
			quads = append(quads, Polygon{
				ll.Left[i], ll.Left[i+1], ll.Right[i+1], ll.Right[i],
			})
		}
	}
	if len(quads) == 0 {
		return nil
	}
	return &Boundary{quads: quads}
}

// Outside reports whether any corner of p lies off the road surface.
func (b *Boundary) Outside(p Polygon) bool {
	for _, pt := range p {
		on := false
		for _, q := range b.quads {
			if polygonContains(q, pt) {
				on = true
				break
			}
		}
		if !on {
			return true
		}
	}
	return false
}

// convexIntersects runs the separating-axis test on two convex
// polygons. True when no separating axis exists.
func convexIntersects(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return !hasSeparatingAxis(a, b) && !hasSeparatingAxis(b, a)
}

func hasSeparatingAxis(a, b Polygon) bool {
	for i := range a {
		p1 := a[i]
		p2 := a[(i+1)%len(a)]
		// Edge normal.
		axis := geom.Point{X: p2.Y - p1.Y, Y: p1.X - p2.X}
		aMin, aMax := project(a, axis)
		bMin, bMax := project(b, axis)
		if aMax < bMin || bMax < aMin {
			return true
		}
	}
	return false
}

func project(p Polygon, axis geom.Point) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, pt := range p {
		d := pt.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// polygonContains tests point-in-convex-polygon irrespective of
// winding: the point must not fall strictly on the outer side of any
// edge for a consistent orientation.
func polygonContains(p Polygon, pt geom.Point) bool {
	if len(p) < 3 {
		return false
	}
	sign := 0
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
		if cross > 1e-12 {
			if sign < 0 {
				return false
			}
			sign = 1
		} else if cross < -1e-12 {
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
