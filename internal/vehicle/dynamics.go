package vehicle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trajectory.report/internal/trajectory"
)

// Input is one control sample for the kinematic single-track model:
// longitudinal acceleration and steering rate.
type Input struct {
	Accel        float64
	SteeringRate float64
}

// Dynamics is a fixed-step vehicle dynamics model that can both
// propagate a state under an input and attempt to reconstruct the
// inputs that realise a given trajectory.
type Dynamics interface {
	// Step integrates the state forward by dt under u.
	Step(s trajectory.State, u Input, dt float64) trajectory.State

	// Reconstruct attempts to recover the input sequence realising
	// traj at fixed step dt. ok is false when no bounded input
	// sequence reproduces the trajectory within tolerance.
	Reconstruct(traj *trajectory.Trajectory, dt float64) (inputs []Input, ok bool, err error)
}

// KS is the kinematic single-track model: the state evolves as
//
//	x'   = v cos(psi)
//	y'   = v sin(psi)
//	psi' = v tan(delta) / L
//	v'   = a
//	d'   = v_delta
//
// with inputs a (acceleration) and v_delta (steering rate), both
// bounded by the vehicle parameters.
type KS struct {
	Params Params
}

// NewKS builds the kinematic single-track model for a vehicle type.
func NewKS(t Type) (*KS, error) {
	p, err := Lookup(t)
	if err != nil {
		return nil, err
	}
	return &KS{Params: p}, nil
}

// Step integrates one fixed step with forward Euler, matching the
// discretisation the reconstruction solves against.
func (m *KS) Step(s trajectory.State, u Input, dt float64) trajectory.State {
	next := s
	next.TimeStep = s.TimeStep + 1
	next.Position.X += dt * s.Velocity * math.Cos(s.Heading)
	next.Position.Y += dt * s.Velocity * math.Sin(s.Heading)
	next.Heading += dt * s.Velocity * math.Tan(s.SteeringAngle) / m.Params.Wheelbase
	next.Velocity += dt * u.Accel
	next.SteeringAngle += dt * u.SteeringRate
	next.Acceleration = u.Accel
	return next
}

// positionTolerance is the max per-step position error (m) accepted
// when replaying reconstructed inputs.
const positionTolerance = 0.15

// Reconstruct recovers per-step inputs by solving, for each step, the
// small linear system relating (a, v_delta) to the observed velocity
// and heading change, then replaying the inputs through Step and
// comparing positions. Inputs outside the vehicle bounds or a replay
// drifting beyond tolerance mean the trajectory is infeasible.
func (m *KS) Reconstruct(traj *trajectory.Trajectory, dt float64) ([]Input, bool, error) {
	if traj == nil {
		return nil, false, fmt.Errorf("vehicle: nil trajectory")
	}
	if dt <= 0 {
		return nil, false, fmt.Errorf("vehicle: non-positive dt %g", dt)
	}
	states := traj.States()
	if len(states) < 2 {
		return nil, false, fmt.Errorf("vehicle: trajectory too short to reconstruct")
	}

	// Derive the steering angle sequence from the observed heading
	// rate: psi' = v tan(delta) / L.
	deltas := make([]float64, len(states))
	for i := 0; i < len(states)-1; i++ {
		dpsi := wrapAngle(states[i+1].Heading - states[i].Heading)
		v := states[i].Velocity
		if math.Abs(v) < 1e-6 {
			// Heading cannot change at standstill under this model.
			if math.Abs(dpsi) > 1e-6 {
				return nil, false, nil
			}
			deltas[i] = 0
			continue
		}
		deltas[i] = math.Atan(dpsi * m.Params.Wheelbase / (dt * v))
		if math.Abs(deltas[i]) > m.Params.MaxSteeringAngle {
			return nil, false, nil
		}
	}
	deltas[len(states)-1] = deltas[len(states)-2]

	inputs := make([]Input, len(states)-1)
	// Per step: [dt 0; 0 dt] [a; v_delta] = [dv; ddelta]. The system
	// is diagonal but solved through gonum to stay in lockstep with
	// the richer models that share this interface.
	coeff := mat.NewDense(2, 2, []float64{dt, 0, 0, dt})
	var sol mat.VecDense
	for i := 0; i < len(states)-1; i++ {
		rhs := mat.NewVecDense(2, []float64{
			states[i+1].Velocity - states[i].Velocity,
			deltas[i+1] - deltas[i],
		})
		if err := sol.SolveVec(coeff, rhs); err != nil {
			return nil, false, fmt.Errorf("vehicle: input solve at step %d: %w", i, err)
		}
		u := Input{Accel: sol.AtVec(0), SteeringRate: sol.AtVec(1)}
		if math.Abs(u.Accel) > m.Params.MaxAccel ||
			math.Abs(u.SteeringRate) > m.Params.MaxSteeringRate {
			return nil, false, nil
		}
		inputs[i] = u
	}

	// Replay and compare positions.
	cur := states[0]
	cur.SteeringAngle = deltas[0]
	for i, u := range inputs {
		cur = m.Step(cur, u, dt)
		if cur.Position.Dist(states[i+1].Position) > positionTolerance {
			return nil, false, nil
		}
	}
	return inputs, true, nil
}

// wrapAngle maps an angle difference into (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
