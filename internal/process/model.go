// Package process maps a process kind and initial condition to the path the
// closed system follows: which variable is swept, over what span, and which
// constraint ties the remaining variables to it.
package process

import (
	"fmt"
	"math"

	"github.com/RMahshie/nonflow/internal/thermo"
)

// DefaultSpanRatio is the ratio between the last and first swept value.
// Constant volume sweeps T0 → 2·T0; every other process sweeps v0 → 2·v0.
const DefaultSpanRatio = 2.0

// Spec selects a process. Index is the polytropic exponent n and is only read
// for Polytropic.
type Spec struct {
	Kind  Kind
	Index *float64
}

// Initial anchors the process at (T0, V0).
type Initial struct {
	T0 float64 // K
	V0 float64 // m³/kg
}

// Model is a resolved process path.
type Model struct {
	kind     Kind
	swept    Variable
	fixed    Variable
	from, to float64
	exponent float64
	initial  thermo.StatePoint
	provider thermo.Provider
}

// Kind returns the process kind.
func (m *Model) Kind() Kind { return m.kind }

// Swept returns the independent variable sampled along the path.
func (m *Model) Swept() Variable { return m.swept }

// Fixed returns the variable held constant along the path, or "" when the
// path is governed only by a power law.
func (m *Model) Fixed() Variable { return m.fixed }

// Exponent returns γ for adiabatic and n for polytropic paths, 0 otherwise.
func (m *Model) Exponent() float64 { return m.exponent }

// Initial returns the state point resolved from the initial condition.
func (m *Model) Initial() thermo.StatePoint { return m.initial }

// Provider returns the property provider the model was selected with.
func (m *Model) Provider() thermo.Provider { return m.provider }

// Span returns the first and last swept values.
func (m *Model) Span() (from, to float64) { return m.from, m.to }

// ValueAt maps a progress fraction t ∈ [0, 1] to the swept variable. The
// endpoints are returned exactly; t outside [0, 1] is clamped.
func (m *Model) ValueAt(t float64) float64 {
	switch {
	case t <= 0:
		return m.from
	case t >= 1:
		return m.to
	}
	return m.from + t*(m.to-m.from)
}

// Constraint describes the governing relation in text.
func (m *Model) Constraint() string {
	switch m.kind {
	case ConstantVolume:
		return fmt.Sprintf("v = %g", m.initial.V)
	case ConstantPressure:
		return fmt.Sprintf("P = %g", m.initial.P)
	case Isothermal:
		return fmt.Sprintf("T = %g", m.initial.T)
	case Adiabatic:
		return fmt.Sprintf("P·v^%g = const, s = %g", m.exponent, m.initial.S)
	case Polytropic:
		return fmt.Sprintf("P·v^%g = const", m.exponent)
	}
	return ""
}

// Selector builds Models against one property provider.
type Selector struct {
	provider thermo.Provider
	ratio    float64
}

// Option configures a Selector.
type Option func(*Selector)

// WithSpanRatio sets the ratio between the last and first swept value.
func WithSpanRatio(ratio float64) Option {
	return func(s *Selector) {
		s.ratio = ratio
	}
}

// NewSelector creates a selector for provider.
func NewSelector(provider thermo.Provider, opts ...Option) (*Selector, error) {
	s := &Selector{
		provider: provider,
		ratio:    DefaultSpanRatio,
	}
	for _, opt := range opts {
		opt(s)
	}

	if provider == nil {
		return nil, fmt.Errorf("process selector requires a property provider")
	}
	if math.IsNaN(s.ratio) || math.IsInf(s.ratio, 0) || s.ratio <= 0 || s.ratio == 1 {
		return nil, invalid("span_ratio", "must be positive, finite and different from 1, got %g", s.ratio)
	}
	return s, nil
}

// Select validates spec and initial, resolves the initial state point and
// returns the process path. Property failures at the initial state are
// returned unchanged.
func (s *Selector) Select(spec Spec, initial Initial) (*Model, error) {
	if !spec.Kind.Valid() {
		return nil, &UnsupportedProcessError{Kind: string(spec.Kind)}
	}
	if err := checkPositive("T0", initial.T0); err != nil {
		return nil, err
	}
	if err := checkPositive("V0", initial.V0); err != nil {
		return nil, err
	}

	var index float64
	if spec.Kind == Polytropic {
		n, err := polytropicIndex(spec.Index)
		if err != nil {
			return nil, err
		}
		index = n
	}

	start, err := s.provider.Resolve(thermo.TV(initial.T0, initial.V0))
	if err != nil {
		return nil, err
	}

	m := &Model{
		kind:     spec.Kind,
		initial:  start,
		provider: s.provider,
	}

	switch spec.Kind {
	case ConstantVolume:
		m.swept, m.fixed = Temperature, Volume
		m.from, m.to = start.T, start.T*s.ratio
	case ConstantPressure:
		m.swept, m.fixed = Volume, Pressure
		m.from, m.to = start.V, start.V*s.ratio
	case Isothermal:
		m.swept, m.fixed = Volume, Temperature
		m.from, m.to = start.V, start.V*s.ratio
	case Adiabatic:
		m.swept, m.fixed = Volume, Entropy
		m.from, m.to = start.V, start.V*s.ratio
		m.exponent = s.provider.Fluid().Gamma
	case Polytropic:
		m.swept = Volume
		m.from, m.to = start.V, start.V*s.ratio
		m.exponent = index
	}

	return m, nil
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be finite")
	}
	if v <= 0 {
		return invalid(field, "must be positive, got %g", v)
	}
	return nil
}

// polytropicIndex accepts any finite n except 0 (isobaric) and 1
// (isothermal), which have dedicated process kinds.
func polytropicIndex(index *float64) (float64, error) {
	if index == nil {
		return 0, invalid("n", "polytropic process requires an index")
	}
	n := *index
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return 0, invalid("n", "must be finite")
	case n == 0:
		return 0, invalid("n", "index 0 is a constant-pressure process; use %s", ConstantPressure)
	case n == 1:
		return 0, invalid("n", "index 1 is an isothermal process; use %s", Isothermal)
	}
	return n, nil
}
