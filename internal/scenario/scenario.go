// Package scenario models the static road geometry and dynamic
// obstacle histories a planning run is evaluated against, and provides
// per-step scene snapshots for the renderer.
//
// The on-disk scenario format is owned by the upstream dataset
// tooling; reader.go only decodes the subset this pipeline consumes.
package scenario

import (
	"github.com/banshee-data/trajectory.report/internal/geom"
)

// Rectangle is an oriented box shape given by its body-frame extents.
type Rectangle struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// Corners returns the shape's four corners for a pose, counter-clockwise.
func (r Rectangle) Corners(center geom.Point, heading float64) []geom.Point {
	hl, hw := r.Length/2, r.Width/2
	local := []geom.Point{
		{X: hl, Y: hw}, {X: -hl, Y: hw}, {X: -hl, Y: -hw}, {X: hl, Y: -hw},
	}
	out := make([]geom.Point, 4)
	for i, p := range local {
		out[i] = p.Rotate(heading).Add(center)
	}
	return out
}

// Lanelet is one road segment: left/right bounds plus centre line.
type Lanelet struct {
	ID     int          `json:"id"`
	Left   []geom.Point `json:"left"`
	Right  []geom.Point `json:"right"`
	Center []geom.Point `json:"center,omitempty"`
}

// StaticObstacle is a fixed polygonal obstacle.
type StaticObstacle struct {
	ID      int          `json:"id"`
	Polygon []geom.Point `json:"polygon"`
}

// ObstacleState is one pose sample of a dynamic obstacle.
type ObstacleState struct {
	TimeStep int        `json:"time_step"`
	Position geom.Point `json:"position"`
	Heading  float64    `json:"heading"`
	Velocity float64    `json:"velocity"`
}

// DynamicObstacle is a moving obstacle with a recorded pose history
// starting at its first time step and covering consecutive steps.
type DynamicObstacle struct {
	ID     int             `json:"id"`
	Shape  Rectangle       `json:"shape"`
	States []ObstacleState `json:"states"`
}

// StateAt returns the obstacle's pose at time step t. The history is
// finite: once t runs past the last recorded state there is no pose,
// and probing at increasing t never yields one again.
func (o *DynamicObstacle) StateAt(t int) (ObstacleState, bool) {
	if len(o.States) == 0 {
		return ObstacleState{}, false
	}
	i := t - o.States[0].TimeStep
	if i < 0 || i >= len(o.States) {
		return ObstacleState{}, false
	}
	return o.States[i], true
}

// Path collects the obstacle's full recorded polyline by probing
// states at increasing time steps until the first missing one.
func (o *DynamicObstacle) Path() []geom.Point {
	var pts []geom.Point
	if len(o.States) == 0 {
		return pts
	}
	for t := o.States[0].TimeStep; ; t++ {
		s, ok := o.StateAt(t)
		if !ok {
			break
		}
		pts = append(pts, s.Position)
	}
	return pts
}

// Scenario is one evaluation scene.
type Scenario struct {
	ID               string            `json:"id"`
	Dataset          string            `json:"dataset,omitempty"`
	DT               float64           `json:"dt"`
	Lanelets         []Lanelet         `json:"lanelets"`
	StaticObstacles  []StaticObstacle  `json:"static_obstacles,omitempty"`
	DynamicObstacles []DynamicObstacle `json:"dynamic_obstacles,omitempty"`
}

// PlanningProblem describes the task handed to the planner: where the
// ego vehicle starts and the region it must reach.
type PlanningProblem struct {
	ID              int        `json:"id"`
	InitialPosition geom.Point `json:"initial_position"`
	InitialHeading  float64    `json:"initial_heading"`
	InitialVelocity float64    `json:"initial_velocity"`
	GoalRegion      geom.AABB  `json:"goal_region"`
}

// DynamicPose is a dynamic obstacle's shape at one time step.
type DynamicPose struct {
	ObstacleID int
	Shape      Rectangle
	Position   geom.Point
	Heading    float64
}

// Snapshot is everything visible in the scene at one time step. It is
// recomputed per frame and never cached across runs.
type Snapshot struct {
	TimeStep int
	Lanelets []Lanelet
	Static   []StaticObstacle
	Dynamic  []DynamicPose
}

// SnapshotAt assembles the scene visible at time step t. Dynamic
// obstacles whose history has ended by t are omitted.
func (s *Scenario) SnapshotAt(t int) Snapshot {
	snap := Snapshot{
		TimeStep: t,
		Lanelets: s.Lanelets,
		Static:   s.StaticObstacles,
	}
	for i := range s.DynamicObstacles {
		o := &s.DynamicObstacles[i]
		st, ok := o.StateAt(t)
		if !ok {
			continue
		}
		snap.Dynamic = append(snap.Dynamic, DynamicPose{
			ObstacleID: o.ID,
			Shape:      o.Shape,
			Position:   st.Position,
			Heading:    st.Heading,
		})
	}
	return snap
}
