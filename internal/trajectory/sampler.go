// Package trajectory samples a process path into an ordered sequence of state
// points.
package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RMahshie/nonflow/internal/process"
	"github.com/RMahshie/nonflow/internal/thermo"
)

// Bounds on the number of sampled state points.
const (
	MinPoints = 5
	MaxPoints = 50
)

// Trajectory is an ordered sequence of state points along one process path.
// Points[0] is the initial state; the swept variable is strictly monotonic.
type Trajectory struct {
	Kind   process.Kind
	Swept  process.Variable
	Points []thermo.StatePoint
}

// Len returns the number of state points.
func (t Trajectory) Len() int { return len(t.Points) }

// ValidatePointCount rejects counts outside [MinPoints, MaxPoints].
func ValidatePointCount(n int) error {
	if n < MinPoints || n > MaxPoints {
		return &process.InvalidParameterError{
			Field:  "n_points",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinPoints, MaxPoints, n),
		}
	}
	return nil
}

// Sample evaluates model at nPoints evenly spaced progress fractions in
// [0, 1]. A property failure at any point rejects the whole trajectory.
func Sample(model *process.Model, nPoints int) (Trajectory, error) {
	if err := ValidatePointCount(nPoints); err != nil {
		return Trajectory{}, err
	}
	if model == nil {
		return Trajectory{}, fmt.Errorf("trajectory: nil process model")
	}

	fractions := floats.Span(make([]float64, nPoints), 0, 1)
	fractions[nPoints-1] = 1
	points := make([]thermo.StatePoint, nPoints)
	points[0] = model.Initial()

	for i := 1; i < nPoints; i++ {
		sp, err := resolve(model, model.ValueAt(fractions[i]))
		if err != nil {
			return Trajectory{}, fmt.Errorf("state point %d of %d: %w", i+1, nPoints, err)
		}
		points[i] = sp
	}

	return Trajectory{
		Kind:   model.Kind(),
		Swept:  model.Swept(),
		Points: points,
	}, nil
}

// resolve derives the state at swept value x from the process constraint.
func resolve(model *process.Model, x float64) (thermo.StatePoint, error) {
	start := model.Initial()
	provider := model.Provider()

	switch model.Kind() {
	case process.ConstantVolume:
		return provider.Resolve(thermo.TV(x, start.V))
	case process.ConstantPressure:
		return provider.Resolve(thermo.PV(start.P, x))
	case process.Isothermal:
		return provider.Resolve(thermo.TV(start.T, x))
	case process.Adiabatic:
		sp, err := provider.Resolve(thermo.PV(powerLawPressure(start, model.Exponent(), x), x))
		if err != nil {
			return thermo.StatePoint{}, err
		}
		// reversible adiabatic: entropy stays at s0
		return thermo.StatePoint{T: sp.T, P: sp.P, V: sp.V, S: start.S}, nil
	case process.Polytropic:
		return provider.Resolve(thermo.PV(powerLawPressure(start, model.Exponent(), x), x))
	default:
		return thermo.StatePoint{}, &process.UnsupportedProcessError{Kind: string(model.Kind())}
	}
}

// powerLawPressure returns P such that P·v^n = P0·v0^n.
func powerLawPressure(start thermo.StatePoint, n, v float64) float64 {
	return start.P * math.Pow(start.V/v, n)
}
