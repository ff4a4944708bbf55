// Package validation runs the post-planning checks on an accepted
// trajectory: obstacle collision, road-boundary collision and dynamic
// feasibility. A failed check is data in the Result, never an error;
// errors are reserved for malformed inputs.
package validation

import (
	"fmt"

	"github.com/banshee-data/trajectory.report/internal/collision"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
	"github.com/banshee-data/trajectory.report/internal/vehicle"
)

// Result carries the outcome of all validation checks on one
// trajectory. Computed once per run.
type Result struct {
	CollidesWithObstacles bool
	CollidesWithBoundary  bool
	Feasible              bool
	ReconstructedInputs   []vehicle.Input
}

// Passed reports whether the trajectory cleared every check.
func (r Result) Passed() bool {
	return !r.CollidesWithObstacles && !r.CollidesWithBoundary && r.Feasible
}

// Validate checks traj against the scenario's obstacles, the derived
// road boundary and the dynamics model at fixed step dt.
//
// The obstacle and boundary collision flags are computed by separate
// queries over the same occupancy polygons, so each flag reports its
// own obstacle kind regardless of the other.
func Validate(traj *trajectory.Trajectory, scn *scenario.Scenario, dyn vehicle.Dynamics, shape scenario.Rectangle, dt float64) (Result, error) {
	if traj == nil {
		return Result{}, fmt.Errorf("validation: no trajectory")
	}
	if scn == nil {
		return Result{}, fmt.Errorf("validation: no scenario")
	}

	occ := collision.EgoOccupancy(traj, shape)
	checker := collision.NewChecker(scn)

	var res Result
	res.CollidesWithObstacles = checker.Collides(occ)

	if b := collision.RoadBoundary(scn); b != nil {
		res.CollidesWithBoundary = leavesBoundary(b, occ)
	}

	inputs, ok, err := dyn.Reconstruct(traj, dt)
	if err != nil {
		return Result{}, fmt.Errorf("validation: feasibility check: %w", err)
	}
	res.Feasible = ok
	if ok {
		res.ReconstructedInputs = inputs
	}
	return res, nil
}

// leavesBoundary reports whether any occupancy polygon leaves the
// drivable surface.
func leavesBoundary(b *collision.Boundary, occ []collision.TimedPolygon) bool {
	for _, tp := range occ {
		if b.Outside(tp.Poly) {
			return true
		}
	}
	return false
}
