package thermo

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
)

const (
	prOmegaA = 0.45723553
	prOmegaB = 0.07779607
	prZc     = 0.30740130

	// bisection on T at fixed (P, v)
	tempRelTol   = 1e-13
	tempMaxSteps = 200

	// equal-fugacity iteration for the saturation pressure
	satTol      = 1e-10
	satMaxSteps = 300
)

// PengRobinson resolves states with the Peng-Robinson (1976) cubic equation
// of state written per unit mass:
//
//	P = R·T/(v − b) − a(T)/(v² + 2·b·v − b²)
//
// Entropy is the ideal-gas entropy at (T, v) plus the EOS residual, so both
// providers share the same reference state.
type PengRobinson struct {
	fluid Fluid
	r     float64 // J/(kg·K)
	ac    float64 // a(Tc), Pa·m⁶/kg²
	b     float64 // co-volume, m³/kg
	kappa float64

	satSteps int // iteration cap for the saturation solve
}

// NewPengRobinson creates a Peng-Robinson provider for f.
func NewPengRobinson(f Fluid) *PengRobinson {
	r := f.R()
	tc, pc, w := f.CriticalTemperature, f.CriticalPressure, f.AcentricFactor
	return &PengRobinson{
		fluid: f,
		r:     r,
		ac:    prOmegaA * r * r * tc * tc / pc,
		b:     prOmegaB * r * tc / pc,
		kappa: 0.37464 + 1.54226*w - 0.26992*w*w,

		satSteps: satMaxSteps,
	}
}

// Fluid returns the working fluid.
func (m *PengRobinson) Fluid() Fluid {
	return m.fluid
}

// CoVolume returns the EOS co-volume b in m³/kg. No state has v ≤ b.
func (m *PengRobinson) CoVolume() float64 {
	return m.b
}

// Resolve completes the state described by known.
func (m *PengRobinson) Resolve(known Known) (StatePoint, error) {
	name := m.fluid.Name
	if err := checkInputs(name, known); err != nil {
		return StatePoint{}, err
	}

	var t, p, v float64
	switch known.Basis {
	case BasisTV:
		t, v = known.T, known.V
		if v <= m.b {
			return StatePoint{}, propertyError(name, known, ErrOutOfRange,
				"specific volume not above co-volume %g m3/kg", m.b)
		}
		if err := checkWindow(m.fluid, known, t, MinPressure); err != nil {
			return StatePoint{}, err
		}
		p = m.pressure(t, v)
	case BasisPV:
		p, v = known.P, known.V
		if v <= m.b {
			return StatePoint{}, propertyError(name, known, ErrOutOfRange,
				"specific volume not above co-volume %g m3/kg", m.b)
		}
		var err error
		if t, err = m.temperature(known, p, v); err != nil {
			return StatePoint{}, err
		}
	case BasisPT:
		p, t = known.P, known.T
		if err := checkWindow(m.fluid, known, t, p); err != nil {
			return StatePoint{}, err
		}
		var err error
		if v, err = m.volume(known, p, t); err != nil {
			return StatePoint{}, err
		}
	}

	if err := checkWindow(m.fluid, known, t, p); err != nil {
		return StatePoint{}, err
	}
	if known.Basis != BasisPT {
		if err := m.checkSinglePhase(known, t, v); err != nil {
			return StatePoint{}, err
		}
	}

	sp := StatePoint{T: t, P: p, V: v, S: m.entropy(t, v) / 1000}
	if err := checkFinite(m.fluid, known, sp); err != nil {
		return StatePoint{}, err
	}
	return sp, nil
}

// attraction returns a(T) and da/dT.
func (m *PengRobinson) attraction(t float64) (a, dadt float64) {
	tc := m.fluid.CriticalTemperature
	g := 1 + m.kappa*(1-math.Sqrt(t/tc))
	a = m.ac * g * g
	dadt = -m.ac * m.kappa * g / math.Sqrt(t*tc)
	return a, dadt
}

func (m *PengRobinson) pressure(t, v float64) float64 {
	a, _ := m.attraction(t)
	return m.r*t/(v-m.b) - a/(v*v+2*m.b*v-m.b*m.b)
}

// dPdv is the isothermal slope (∂P/∂v)_T. A stable single phase has dPdv < 0.
func (m *PengRobinson) dPdv(t, v float64) float64 {
	a, _ := m.attraction(t)
	d := v*v + 2*m.b*v - m.b*m.b
	return -m.r*t/((v-m.b)*(v-m.b)) + a*(2*v+2*m.b)/(d*d)
}

// entropy in J/(kg·K).
func (m *PengRobinson) entropy(t, v float64) float64 {
	_, dadt := m.attraction(t)
	b := m.b
	residual := m.r*math.Log((v-b)/v) +
		dadt/(2*math.Sqrt2*b)*math.Log((v+(1+math.Sqrt2)*b)/(v+(1-math.Sqrt2)*b))
	return idealEntropy(m.fluid, t, v) + residual
}

// temperature inverts P(T, v) by bisection over the fluid's temperature window.
func (m *PengRobinson) temperature(known Known, p, v float64) (float64, error) {
	lo, hi := m.fluid.TMin, m.fluid.TMax
	flo := m.pressure(lo, v) - p
	fhi := m.pressure(hi, v) - p
	if flo > 0 {
		return 0, propertyError(m.fluid.Name, known, ErrOutOfRange,
			"pressure requires a temperature below %g K", lo)
	}
	if fhi < 0 {
		return 0, propertyError(m.fluid.Name, known, ErrOutOfRange,
			"pressure requires a temperature above %g K", hi)
	}

	for i := 0; i < tempMaxSteps && hi-lo > tempRelTol*hi; i++ {
		mid := 0.5 * (lo + hi)
		fm := m.pressure(mid, v) - p
		if fm == 0 {
			return mid, nil
		}
		if (fm < 0) == (flo < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// volume inverts P(T, v) for v through the cubic in Z. When both a liquid and
// a vapour root exist the one with the lower fugacity is the stable phase.
func (m *PengRobinson) volume(known Known, p, t float64) (float64, error) {
	a, _ := m.attraction(t)
	rt := m.r * t
	A := a * p / (rt * rt)
	B := m.b * p / rt

	roots := zRoots(A, B)
	if len(roots) == 0 {
		return 0, propertyError(m.fluid.Name, known, ErrNoSolution, "no compressibility root above B")
	}

	z := roots[len(roots)-1]
	if len(roots) > 1 {
		zl := roots[0]
		lnL, lnV := lnFugacityCoeff(zl, A, B), lnFugacityCoeff(z, A, B)
		if math.Abs(lnL-lnV) < satTol {
			return 0, propertyError(m.fluid.Name, known, ErrTwoPhase,
				"pressure equals the saturation pressure at %g K", t)
		}
		if lnL < lnV {
			z = zl
		}
	}
	return z * rt / p, nil
}

type saturation struct {
	P, VL, VV float64
}

// saturation finds the vapour pressure at t < Tc by successive substitution on
// the fugacity ratio, starting from the Wilson correlation.
func (m *PengRobinson) saturation(t float64) (saturation, error) {
	f := m.fluid
	tc, pc := f.CriticalTemperature, f.CriticalPressure
	if t >= tc {
		return saturation{}, fmt.Errorf("no saturation above critical temperature %g K", tc)
	}

	a, _ := m.attraction(t)
	rt := m.r * t
	vc := prZc * m.r * tc / pc
	p := pc * math.Exp(5.373*(1+f.AcentricFactor)*(1-tc/t))

	for i := 0; i < m.satSteps; i++ {
		A := a * p / (rt * rt)
		B := m.b * p / rt
		roots := zRoots(A, B)
		if len(roots) == 0 {
			return saturation{}, fmt.Errorf("no compressibility root at %g Pa", p)
		}
		zl, zv := roots[0], roots[len(roots)-1]
		if zv-zl < 1e-9 {
			// single root: below the liquid spinodal only vapour exists and
			// above the vapour spinodal only liquid does
			if zl*rt/p > vc {
				p *= 1.2
			} else {
				p /= 1.2
			}
			continue
		}

		ratio := math.Exp(lnFugacityCoeff(zl, A, B) - lnFugacityCoeff(zv, A, B))
		if math.Abs(ratio-1) < satTol {
			return saturation{P: p, VL: zl * rt / p, VV: zv * rt / p}, nil
		}
		p *= ratio
	}
	return saturation{}, fmt.Errorf("saturation pressure at %g K did not converge", t)
}

// checkSinglePhase rejects subcritical states that are mechanically unstable
// or lie between the saturated liquid and vapour volumes.
func (m *PengRobinson) checkSinglePhase(known Known, t, v float64) error {
	if t >= m.fluid.CriticalTemperature {
		return nil
	}
	if m.dPdv(t, v) >= 0 {
		return propertyError(m.fluid.Name, known, ErrTwoPhase, "mechanically unstable state")
	}
	sat, err := m.saturation(t)
	if err != nil {
		// near the critical point the dome is too thin to resolve; the
		// stability test above still applies
		log.Debug().
			Err(err).
			Str("fluid", m.fluid.Name).
			Float64("T", t).
			Float64("v", v).
			Msg("Saturation solve failed, accepting state on the stability test alone")
		return nil
	}
	if v > sat.VL && v < sat.VV {
		return propertyError(m.fluid.Name, known, ErrTwoPhase,
			"v between saturated liquid %g and vapour %g m3/kg (Psat %g Pa)", sat.VL, sat.VV, sat.P)
	}
	return nil
}

// lnFugacityCoeff is ln φ for a Peng-Robinson phase with compressibility z.
func lnFugacityCoeff(z, A, B float64) float64 {
	return z - 1 - math.Log(z-B) -
		A/(2*math.Sqrt2*B)*math.Log((z+(1+math.Sqrt2)*B)/(z+(1-math.Sqrt2)*B))
}

// zRoots returns the physical (Z > B) roots of the Peng-Robinson cubic,
// ascending.
func zRoots(A, B float64) []float64 {
	all := cubicRoots(-(1 - B), A-3*B*B-2*B, -(A*B - B*B - B*B*B))
	out := all[:0]
	for _, z := range all {
		if z > B {
			out = append(out, z)
		}
	}
	return out
}

// cubicRoots returns the real roots of x³ + a2·x² + a1·x + a0, ascending.
func cubicRoots(a2, a1, a0 float64) []float64 {
	q := (3*a1 - a2*a2) / 9
	r := (9*a2*a1 - 27*a0 - 2*a2*a2*a2) / 54
	disc := q*q*q + r*r
	shift := a2 / 3

	var roots []float64
	switch {
	case disc > 0:
		sq := math.Sqrt(disc)
		roots = []float64{math.Cbrt(r+sq) + math.Cbrt(r-sq) - shift}
	case q == 0:
		roots = []float64{-shift}
	default:
		c := r / math.Sqrt(-q*q*q)
		c = math.Max(-1, math.Min(1, c))
		theta := math.Acos(c)
		k := 2 * math.Sqrt(-q)
		roots = []float64{
			k*math.Cos(theta/3) - shift,
			k*math.Cos((theta+2*math.Pi)/3) - shift,
			k*math.Cos((theta+4*math.Pi)/3) - shift,
		}
	}

	for i, x := range roots {
		for j := 0; j < 2; j++ {
			fx := ((x+a2)*x+a1)*x + a0
			dfx := (3*x+2*a2)*x + a1
			if dfx == 0 {
				break
			}
			x -= fx / dfx
		}
		roots[i] = x
	}
	sort.Float64s(roots)
	return roots
}
