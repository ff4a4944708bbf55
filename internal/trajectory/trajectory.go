// Package trajectory defines the motion types exchanged between the
// planner, the validation gate and the renderer: time-indexed ego
// trajectories and per-step candidate path sets.
package trajectory

import (
	"fmt"
	"math"

	"github.com/banshee-data/trajectory.report/internal/geom"
)

// State is one sample of a vehicle trajectory. Positions are scene
// coordinates in metres, Heading is radians, Velocity metres/second.
// Acceleration and SteeringAngle are only populated when the producing
// model provides them.
type State struct {
	TimeStep      int
	Position      geom.Point
	Heading       float64
	Velocity      float64
	Acceleration  float64
	SteeringAngle float64
}

// Trajectory is an ordered, gap-free sequence of states with strictly
// increasing time steps. It is immutable once constructed; callers
// hand out trajectories read-only.
type Trajectory struct {
	states []State
}

// New builds a trajectory from states, validating the time-step
// invariant: non-empty, strictly increasing by one.
func New(states []State) (*Trajectory, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("trajectory: no states")
	}
	for i := 1; i < len(states); i++ {
		if states[i].TimeStep != states[i-1].TimeStep+1 {
			return nil, fmt.Errorf("trajectory: gap between step %d and %d",
				states[i-1].TimeStep, states[i].TimeStep)
		}
	}
	cp := make([]State, len(states))
	copy(cp, states)
	return &Trajectory{states: cp}, nil
}

// InitialStep returns the time step of the first state.
func (tr *Trajectory) InitialStep() int { return tr.states[0].TimeStep }

// FinalStep returns the time step of the last state.
func (tr *Trajectory) FinalStep() int {
	return tr.states[len(tr.states)-1].TimeStep
}

// Len returns the number of states.
func (tr *Trajectory) Len() int { return len(tr.states) }

// StateAt returns the state at time step t and whether one exists.
func (tr *Trajectory) StateAt(t int) (State, bool) {
	i := t - tr.states[0].TimeStep
	if i < 0 || i >= len(tr.states) {
		return State{}, false
	}
	return tr.states[i], true
}

// States returns a copy of the full state list.
func (tr *Trajectory) States() []State {
	cp := make([]State, len(tr.states))
	copy(cp, tr.states)
	return cp
}

// Positions returns the trajectory's positions as a polyline.
func (tr *Trajectory) Positions() []geom.Point {
	pts := make([]geom.Point, len(tr.states))
	for i, s := range tr.states {
		pts[i] = s.Position
	}
	return pts
}

// Split returns the past (indices 0..t relative to the first state)
// and future (t..end) sub-polylines. At the first step the past part
// is empty; past t beyond the end the future part holds one point.
func (tr *Trajectory) Split(t int) (past, future []geom.Point) {
	pts := tr.Positions()
	i := t - tr.states[0].TimeStep
	if i < 0 {
		i = 0
	}
	if i >= len(pts) {
		i = len(pts) - 1
	}
	return pts[:i], pts[i:]
}

// Candidate is one sampled path proposed by the planner at a decision
// step, with its scalar cost. Paths do not share a sample count.
type Candidate struct {
	Points []geom.Point
	Cost   float64
}

// Valid reports whether the candidate can be rendered: at least two
// points and a finite cost.
func (c Candidate) Valid() bool {
	return len(c.Points) >= 2 && !math.IsNaN(c.Cost) && !math.IsInf(c.Cost, 0)
}

// CandidateSet holds the ordered candidates sampled at one decision
// step together with the time the planner spent on that step.
type CandidateSet struct {
	Step       int
	Candidates []Candidate
	Elapsed    float64 // seconds spent planning this step
}

// CostRange returns the minimum and maximum cost over the set.
// ok is false when the set is empty.
func (cs CandidateSet) CostRange() (lo, hi float64, ok bool) {
	if len(cs.Candidates) == 0 {
		return 0, 0, false
	}
	lo, hi = cs.Candidates[0].Cost, cs.Candidates[0].Cost
	for _, c := range cs.Candidates[1:] {
		lo = math.Min(lo, c.Cost)
		hi = math.Max(hi, c.Cost)
	}
	return lo, hi, true
}
