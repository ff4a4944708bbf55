package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/trajectory.report/internal/fsutil"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
	"github.com/banshee-data/trajectory.report/internal/vehicle"
)

// solutionVersion identifies the record schema.
const solutionVersion = "2024a"

// SolutionRecord is the standardized, self-contained record of an
// accepted trajectory. Written exactly once per run.
type SolutionRecord struct {
	Version           string          `json:"version"`
	ScenarioID        string          `json:"scenario_id"`
	PlanningProblemID int             `json:"planning_problem_id"`
	VehicleType       vehicle.Type    `json:"vehicle_type"`
	VehicleModel      vehicle.Model   `json:"vehicle_model"`
	CostFunction      string          `json:"cost_function"`
	Trajectory        []solutionState `json:"trajectory"`
}

type solutionState struct {
	TimeStep int     `json:"time_step"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Heading  float64 `json:"heading"`
	Velocity float64 `json:"velocity"`
}

// NewSolutionRecord packages an accepted trajectory with its planning
// metadata.
func NewSolutionRecord(scenarioID string, problemID int, vt vehicle.Type, vm vehicle.Model, costFunction string, traj *trajectory.Trajectory) SolutionRecord {
	states := traj.States()
	rec := SolutionRecord{
		Version:           solutionVersion,
		ScenarioID:        scenarioID,
		PlanningProblemID: problemID,
		VehicleType:       vt,
		VehicleModel:      vm,
		CostFunction:      costFunction,
		Trajectory:        make([]solutionState, len(states)),
	}
	for i, s := range states {
		rec.Trajectory[i] = solutionState{
			TimeStep: s.TimeStep,
			X:        s.Position.X,
			Y:        s.Position.Y,
			Heading:  s.Heading,
			Velocity: s.Velocity,
		}
	}
	return rec
}

// WriteSolution writes the record to path as a single JSON document.
// When overwrite is false and the target already exists, it fails with
// AlreadyExistsError and leaves the existing file untouched.
func WriteSolution(fs fsutil.FileSystem, rec SolutionRecord, path string, overwrite bool) error {
	if !overwrite && fs.Exists(path) {
		return &AlreadyExistsError{Path: path}
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create solution dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal solution record: %w", err)
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write solution record %s: %w", path, err)
	}
	return nil
}

// OverviewPath returns the static overview image target for one run:
// <root>/figs/<dataset>/<method>_<scenario>.jpg.
func OverviewPath(resultRoot, dataset, method, scenarioID string) string {
	return filepath.Join(resultRoot, "figs", dataset, fmt.Sprintf("%s_%s.jpg", method, scenarioID))
}
