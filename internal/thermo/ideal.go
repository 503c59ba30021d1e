package thermo

// IdealGas resolves states with P·v = R·T and constant specific heats.
type IdealGas struct {
	fluid Fluid
}

// NewIdealGas creates an ideal-gas provider for f.
func NewIdealGas(f Fluid) *IdealGas {
	return &IdealGas{fluid: f}
}

// Fluid returns the working fluid.
func (g *IdealGas) Fluid() Fluid {
	return g.fluid
}

// Resolve completes the state described by known.
func (g *IdealGas) Resolve(known Known) (StatePoint, error) {
	if err := checkInputs(g.fluid.Name, known); err != nil {
		return StatePoint{}, err
	}

	r := g.fluid.R()
	var t, p, v float64
	switch known.Basis {
	case BasisTV:
		t, v = known.T, known.V
		p = r * t / v
	case BasisPV:
		p, v = known.P, known.V
		t = p * v / r
	case BasisPT:
		p, t = known.P, known.T
		v = r * t / p
	}

	if err := checkWindow(g.fluid, known, t, p); err != nil {
		return StatePoint{}, err
	}

	sp := StatePoint{
		T: t,
		P: p,
		V: v,
		S: idealEntropy(g.fluid, t, v) / 1000,
	}
	if err := checkFinite(g.fluid, known, sp); err != nil {
		return StatePoint{}, err
	}
	return sp, nil
}
