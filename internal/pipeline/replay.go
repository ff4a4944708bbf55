package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trajectory.report/internal/geom"
	"github.com/banshee-data/trajectory.report/internal/scenario"
	"github.com/banshee-data/trajectory.report/internal/trajectory"
	"github.com/banshee-data/trajectory.report/internal/vehicle"
)

// ReplayPlanner replays the recorded output of an external planner.
// The planner runs out of process and dumps one document per scenario
// at <dir>/<scenario-id>.plan.json; a missing dump or an explicit
// found=false is a NotFound outcome, not an error.
type ReplayPlanner struct {
	Dir string
}

type planDump struct {
	Found         bool        `json:"found"`
	GoalReached   bool        `json:"goal_reached"`
	Trajectory    []dumpState `json:"trajectory"`
	CandidateSets []dumpSet   `json:"candidate_sets"`
}

type dumpState struct {
	TimeStep int     `json:"time_step"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Heading  float64 `json:"heading"`
	Velocity float64 `json:"velocity"`
}

type dumpSet struct {
	Step       int        `json:"step"`
	Elapsed    float64    `json:"elapsed_s"`
	Candidates []dumpCand `json:"candidates"`
}

type dumpCand struct {
	Cost   float64      `json:"cost"`
	Points []geom.Point `json:"points"`
}

// Plan loads the recorded outcome for scn.
func (p *ReplayPlanner) Plan(ctx context.Context, scn *scenario.Scenario, problem scenario.PlanningProblem, params vehicle.Params, method string, numSamples [3]int) (PlanOutcome, error) {
	_ = ctx
	path := filepath.Join(p.Dir, scn.ID+".plan.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return PlanOutcome{Found: false}, nil
	}
	if err != nil {
		return PlanOutcome{}, fmt.Errorf("read plan dump %s: %w", path, err)
	}

	var dump planDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return PlanOutcome{}, fmt.Errorf("parse plan dump %s: %w", path, err)
	}
	if !dump.Found || len(dump.Trajectory) == 0 {
		return PlanOutcome{Found: false}, nil
	}

	states := make([]trajectory.State, len(dump.Trajectory))
	for i, s := range dump.Trajectory {
		states[i] = trajectory.State{
			TimeStep: s.TimeStep,
			Position: geom.Point{X: s.X, Y: s.Y},
			Heading:  s.Heading,
			Velocity: s.Velocity,
		}
	}
	traj, err := trajectory.New(states)
	if err != nil {
		return PlanOutcome{}, fmt.Errorf("plan dump %s: %w", path, err)
	}

	sets := make([]trajectory.CandidateSet, len(dump.CandidateSets))
	for i, ds := range dump.CandidateSets {
		cs := trajectory.CandidateSet{Step: ds.Step, Elapsed: ds.Elapsed}
		for _, dc := range ds.Candidates {
			cs.Candidates = append(cs.Candidates, trajectory.Candidate{
				Points: dc.Points,
				Cost:   dc.Cost,
			})
		}
		sets[i] = cs
	}

	return PlanOutcome{
		Found:         true,
		GoalReached:   dump.GoalReached,
		Trajectory:    traj,
		CandidateSets: sets,
	}, nil
}
