// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// StraightTrajectory builds a constant-velocity trajectory along the
// x-axis starting at the origin: n states, v metres/second, step dt.
func StraightTrajectory(t *testing.T, n int, v, dt float64) *trajectory.Trajectory {
	t.Helper()
	states := make([]trajectory.State, n)
	for i := range states {
		states[i] = trajectory.State{
			TimeStep: i,
			Position: geom.Point{X: float64(i) * v * dt},
			Velocity: v,
		}
	}
	tr, err := trajectory.New(states)
	AssertNoError(t, err)
	return tr
}

// StraightRoadScenario builds a minimal scenario: one straight
// east-west lanelet of the given half-width and length, no obstacles.
func StraightRoadScenario(id string, length, halfWidth float64) *scenario.Scenario {
	left := []geom.Point{{X: -10, Y: halfWidth}, {X: length, Y: halfWidth}}
	right := []geom.Point{{X: -10, Y: -halfWidth}, {X: length, Y: -halfWidth}}
	return &scenario.Scenario{
		ID: id,
		DT: 0.1,
		Lanelets: []scenario.Lanelet{
			{ID: 1, Left: left, Right: right},
		},
	}
}

// CrossingObstacle returns a dynamic obstacle with k recorded states
// moving north through x=cx.
func CrossingObstacle(id, k int, cx float64) scenario.DynamicObstacle {
	states := make([]scenario.ObstacleState, k)
	for i := range states {
		states[i] = scenario.ObstacleState{
			TimeStep: i,
			Position: geom.Point{X: cx, Y: float64(i) - float64(k)/2},
			Heading:  1.5707963267948966,
			Velocity: 10,
		}
	}
	return scenario.DynamicObstacle{
		ID:     id,
		Shape:  scenario.Rectangle{Length: 4.5, Width: 1.8},
		States: states,
	}
}
