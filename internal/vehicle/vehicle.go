// Package vehicle carries the vehicle catalog and the kinematic
// single-track dynamics used for feasibility checking. Parameter sets
// follow the benchmark vehicle definitions the upstream dataset uses.
package vehicle

import "fmt"

// Type identifies a benchmark vehicle parameter set.
type Type string

const (
	FordEscort Type = "ford_escort"
	BMW320i    Type = "bmw_320i"
	VWVanagon  Type = "vw_vanagon"
)

// Model identifies the dynamics model a solution was checked against.
type Model string

const (
	// ModelPM is the point-mass model used in exported solution records.
	ModelPM Model = "PM"
	// ModelKS is the kinematic single-track model used for
	// feasibility checking.
	ModelKS Model = "KS"
)

// Params holds the physical parameters of one vehicle type.
type Params struct {
	Type      Type
	Length    float64 // overall length (m)
	Width     float64 // overall width (m)
	Wheelbase float64 // axle distance (m)

	MaxAccel         float64 // |a| bound (m/s^2)
	MaxSteeringAngle float64 // |delta| bound (rad)
	MaxSteeringRate  float64 // |v_delta| bound (rad/s)
	MaxVelocity      float64 // forward speed bound (m/s)
}

var catalog = map[Type]Params{
	FordEscort: {
		Type: FordEscort, Length: 4.298, Width: 1.674, Wheelbase: 2.389,
		MaxAccel: 11.5, MaxSteeringAngle: 0.910, MaxSteeringRate: 0.4,
		MaxVelocity: 45.8,
	},
	BMW320i: {
		Type: BMW320i, Length: 4.508, Width: 1.610, Wheelbase: 2.578,
		MaxAccel: 11.5, MaxSteeringAngle: 1.066, MaxSteeringRate: 0.4,
		MaxVelocity: 50.8,
	},
	VWVanagon: {
		Type: VWVanagon, Length: 4.569, Width: 1.844, Wheelbase: 3.160,
		MaxAccel: 11.5, MaxSteeringAngle: 1.023, MaxSteeringRate: 0.4,
		MaxVelocity: 41.7,
	},
}

// Lookup returns the parameter set for a vehicle type.
func Lookup(t Type) (Params, error) {
	p, ok := catalog[t]
	if !ok {
		return Params{}, fmt.Errorf("vehicle: unknown type %q", t)
	}
	return p, nil
}

// ParseType validates a configured vehicle type string.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("vehicle: unknown type %q", s)
	}
	return t, nil
}
