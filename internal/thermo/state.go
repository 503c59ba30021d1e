package thermo

import (
	"fmt"
	"math"
)

// StatePoint is an equilibrium state of the working fluid.
// Units: T in K, P in Pa, V in m³/kg, S in kJ/(kg·K).
type StatePoint struct {
	T float64 `json:"T"`
	P float64 `json:"P"`
	V float64 `json:"v"`
	S float64 `json:"s"`
}

func (sp StatePoint) String() string {
	return fmt.Sprintf("{T=%.6g K, P=%.6g Pa, v=%.6g m3/kg, s=%.6g kJ/kg/K}", sp.T, sp.P, sp.V, sp.S)
}

// Basis names the pair of independent variables carried by a Known.
type Basis int

const (
	BasisTV Basis = iota
	BasisPV
	BasisPT
)

func (b Basis) String() string {
	switch b {
	case BasisTV:
		return "T,v"
	case BasisPV:
		return "P,v"
	case BasisPT:
		return "P,T"
	default:
		return fmt.Sprintf("Basis(%d)", int(b))
	}
}

// Known is a partial state: exactly the two variables named by Basis are
// meaningful, the third is ignored.
type Known struct {
	Basis Basis
	T     float64
	P     float64
	V     float64
}

// TV fixes a state by temperature and specific volume.
func TV(t, v float64) Known { return Known{Basis: BasisTV, T: t, V: v} }

// PV fixes a state by pressure and specific volume.
func PV(p, v float64) Known { return Known{Basis: BasisPV, P: p, V: v} }

// PT fixes a state by pressure and temperature.
func PT(p, t float64) Known { return Known{Basis: BasisPT, P: p, T: t} }

func (k Known) String() string {
	switch k.Basis {
	case BasisTV:
		return fmt.Sprintf("(T=%g K, v=%g m3/kg)", k.T, k.V)
	case BasisPV:
		return fmt.Sprintf("(P=%g Pa, v=%g m3/kg)", k.P, k.V)
	case BasisPT:
		return fmt.Sprintf("(P=%g Pa, T=%g K)", k.P, k.T)
	default:
		return fmt.Sprintf("(%s)", k.Basis)
	}
}

// inputs returns the two given values with their symbols.
func (k Known) inputs() ([2]string, [2]float64) {
	switch k.Basis {
	case BasisTV:
		return [2]string{"T", "v"}, [2]float64{k.T, k.V}
	case BasisPV:
		return [2]string{"P", "v"}, [2]float64{k.P, k.V}
	default:
		return [2]string{"P", "T"}, [2]float64{k.P, k.T}
	}
}

// checkInputs rejects non-finite and non-positive inputs, which no fluid
// model can place on a physical state.
func checkInputs(fluid string, k Known) error {
	if k.Basis != BasisTV && k.Basis != BasisPV && k.Basis != BasisPT {
		return propertyError(fluid, k, ErrNoSolution, "unsupported basis %s", k.Basis)
	}
	names, values := k.inputs()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return propertyError(fluid, k, ErrOutOfRange, "%s is not finite", names[i])
		}
		if v <= 0 {
			return propertyError(fluid, k, ErrOutOfRange, "%s must be positive, got %g", names[i], v)
		}
	}
	return nil
}
