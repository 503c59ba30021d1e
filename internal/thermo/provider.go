// Package thermo resolves thermodynamic state points of a pure working fluid.
//
// A Provider turns two independent variables (T & v, P & v or P & T) into a
// full StatePoint including specific entropy. Two backends are available: a
// closed-form ideal gas with constant specific heats and the Peng-Robinson
// cubic equation of state.
package thermo

import (
	"fmt"
	"math"
)

// Property model names accepted by NewProvider.
const (
	ModelIdealGas     = "ideal"
	ModelPengRobinson = "peng_robinson"
)

const (
	// MinPressure is the lowest absolute pressure accepted for any state, in Pa.
	MinPressure = 1e-3

	// Entropy reference state: s = 0 for the ideal gas at (RefTemperature, RefPressure).
	RefTemperature = 298.15
	RefPressure    = 101325.0
)

// Provider resolves partial states of one fluid. Implementations are pure and
// safe for concurrent use.
type Provider interface {
	Fluid() Fluid
	Resolve(known Known) (StatePoint, error)
}

// NewProvider builds the provider for a property model and catalog fluid.
// Empty names select the ideal-gas model and DefaultFluid.
func NewProvider(model, fluidName string) (Provider, error) {
	if fluidName == "" {
		fluidName = DefaultFluid
	}
	fluid, err := LookupFluid(fluidName)
	if err != nil {
		return nil, err
	}

	switch model {
	case "", ModelIdealGas:
		return NewIdealGas(fluid), nil
	case ModelPengRobinson:
		return NewPengRobinson(fluid), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
}

// Models lists the accepted property model names.
func Models() []string {
	return []string{ModelIdealGas, ModelPengRobinson}
}

// checkWindow applies the fluid's temperature window and the pressure floor.
func checkWindow(f Fluid, known Known, t, p float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < f.TMin || t > f.TMax {
		return propertyError(f.Name, known, ErrOutOfRange,
			"temperature %g K outside [%g, %g] K", t, f.TMin, f.TMax)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) || p < MinPressure {
		return propertyError(f.Name, known, ErrOutOfRange,
			"pressure %g Pa outside [%g, +Inf) Pa", p, MinPressure)
	}
	return nil
}

// checkFinite rejects a resolved state with any non-finite property.
func checkFinite(f Fluid, known Known, sp StatePoint) error {
	for _, x := range []float64{sp.T, sp.P, sp.V, sp.S} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return propertyError(f.Name, known, ErrOutOfRange,
				"state (T=%g K, P=%g Pa, v=%g m3/kg, s=%g) not finite", sp.T, sp.P, sp.V, sp.S)
		}
	}
	return nil
}

// idealEntropy is the ideal-gas specific entropy in J/(kg·K) relative to the
// reference state.
func idealEntropy(f Fluid, t, v float64) float64 {
	vRef := f.R() * RefTemperature / RefPressure
	return f.Cv()*math.Log(t/RefTemperature) + f.R()*math.Log(v/vRef)
}
