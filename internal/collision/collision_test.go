package collision

import (
	"testing"

	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

func square(cx, cy, half float64) Polygon {
	return Polygon{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

func TestConvexIntersects(t *testing.T) {
	a := square(0, 0, 1)
	if !convexIntersects(a, square(1.5, 0, 1)) {
		t.Error("overlapping squares should intersect")
	}
	if convexIntersects(a, square(5, 0, 1)) {
		t.Error("distant squares should not intersect")
	}
	// Corner touch: projections overlap at a single value.
	if !convexIntersects(a, square(2, 2, 1)) {
		t.Error("corner-touching squares should count as intersecting")
	}
}

func TestCheckerDynamicTiming(t *testing.T) {
	scn := &scenario.Scenario{
		DynamicObstacles: []scenario.DynamicObstacle{{
			ID:    1,
			Shape: scenario.Rectangle{Length: 2, Width: 2},
			States: []scenario.ObstacleState{
				{TimeStep: 0, Position: geom.Point{X: 0, Y: 0}},
				{TimeStep: 1, Position: geom.Point{X: 50, Y: 0}},
			},
		}},
	}
	c := NewChecker(scn)

	// Same place, same step: collision.
	if !c.Collides([]TimedPolygon{{Step: 0, Poly: square(0, 0, 1)}}) {
		t.Error("expected collision at step 0")
	}
	// Same place, later step: the obstacle has moved away.
	if c.Collides([]TimedPolygon{{Step: 1, Poly: square(0, 0, 1)}}) {
		t.Error("no collision expected at step 1")
	}
}

func TestEgoOccupancy(t *testing.T) {
	states := []trajectory.State{
		{TimeStep: 0, Position: geom.Point{X: 0}},
		{TimeStep: 1, Position: geom.Point{X: 2}},
	}
	tr, err := trajectory.New(states)
	if err != nil {
		t.Fatal(err)
	}
	occ := EgoOccupancy(tr, scenario.Rectangle{Length: 4, Width: 2})
	if len(occ) != 2 {
		t.Fatalf("got %d occupancy polygons, want 2", len(occ))
	}
	if occ[1].Step != 1 {
		t.Errorf("second polygon step = %d, want 1", occ[1].Step)
	}
	if len(occ[0].Poly) != 4 {
		t.Errorf("occupancy polygon has %d corners", len(occ[0].Poly))
	}
}

func TestRoadBoundary(t *testing.T) {
	scn := &scenario.Scenario{
		Lanelets: []scenario.Lanelet{{
			ID:    1,
			Left:  []geom.Point{{X: 0, Y: 3}, {X: 100, Y: 3}},
			Right: []geom.Point{{X: 0, Y: -3}, {X: 100, Y: -3}},
		}},
	}
	b := RoadBoundary(scn)
	if b == nil {
		t.Fatal("expected boundary for lanelet scenario")
	}
	if b.Outside(square(50, 0, 1)) {
		t.Error("on-road polygon flagged outside")
	}
	if !b.Outside(square(50, 10, 1)) {
		t.Error("off-road polygon not flagged")
	}

	if RoadBoundary(&scenario.Scenario{}) != nil {
		t.Error("scenario without lanelets should have no boundary")
	}
}
