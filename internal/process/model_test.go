package process

import (
	"errors"
	"math"
	"testing"

	"github.com/RMahshie/nonflow/internal/thermo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAirSelector(t *testing.T, opts ...Option) *Selector {
	t.Helper()
	provider, err := thermo.NewProvider(thermo.ModelIdealGas, "air")
	require.NoError(t, err)
	sel, err := NewSelector(provider, opts...)
	require.NoError(t, err)
	return sel
}

func index(n float64) *float64 { return &n }

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("isenthalpic")
	var unsupported *UnsupportedProcessError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "isenthalpic", unsupported.Kind)
}

func TestSelectSweepPolicy(t *testing.T) {
	sel := newAirSelector(t)
	initial := Initial{T0: 300, V0: 1.0}

	tests := []struct {
		spec     Spec
		swept    Variable
		fixed    Variable
		from, to float64
		exponent float64
	}{
		{Spec{Kind: ConstantVolume}, Temperature, Volume, 300, 600, 0},
		{Spec{Kind: ConstantPressure}, Volume, Pressure, 1, 2, 0},
		{Spec{Kind: Isothermal}, Volume, Temperature, 1, 2, 0},
		{Spec{Kind: Adiabatic}, Volume, Entropy, 1, 2, 1.4},
		{Spec{Kind: Polytropic, Index: index(1.3)}, Volume, "", 1, 2, 1.3},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec.Kind), func(t *testing.T) {
			m, err := sel.Select(tt.spec, initial)
			require.NoError(t, err)

			assert.Equal(t, tt.spec.Kind, m.Kind())
			assert.Equal(t, tt.swept, m.Swept())
			assert.Equal(t, tt.fixed, m.Fixed())
			assert.Equal(t, tt.exponent, m.Exponent())

			from, to := m.Span()
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
			assert.Equal(t, from, m.ValueAt(0))
			assert.Equal(t, to, m.ValueAt(1))
			assert.InDelta(t, (from+to)/2, m.ValueAt(0.5), 1e-12)
			assert.NotEmpty(t, m.Constraint())

			assert.Equal(t, 300.0, m.Initial().T)
			assert.Equal(t, 1.0, m.Initial().V)
		})
	}
}

func TestSelectSpanRatio(t *testing.T) {
	sel := newAirSelector(t, WithSpanRatio(0.5))
	m, err := sel.Select(Spec{Kind: Isothermal}, Initial{T0: 300, V0: 1.0})
	require.NoError(t, err)

	from, to := m.Span()
	assert.Equal(t, 1.0, from)
	assert.Equal(t, 0.5, to)

	provider, err := thermo.NewProvider("", "")
	require.NoError(t, err)
	for _, ratio := range []float64{0, -2, 1, math.Inf(1), math.NaN()} {
		_, err := NewSelector(provider, WithSpanRatio(ratio))
		var invalidErr *InvalidParameterError
		require.True(t, errors.As(err, &invalidErr), "ratio %g", ratio)
		assert.Equal(t, "span_ratio", invalidErr.Field)
	}

	_, err = NewSelector(nil)
	assert.Error(t, err)
}

func TestSelectRejectsInvalidParameters(t *testing.T) {
	sel := newAirSelector(t)

	tests := []struct {
		name    string
		spec    Spec
		initial Initial
		field   string
	}{
		{"zero T0", Spec{Kind: Isothermal}, Initial{T0: 0, V0: 1}, "T0"},
		{"negative V0", Spec{Kind: Isothermal}, Initial{T0: 300, V0: -1}, "V0"},
		{"NaN T0", Spec{Kind: Adiabatic}, Initial{T0: math.NaN(), V0: 1}, "T0"},
		{"polytropic without index", Spec{Kind: Polytropic}, Initial{T0: 300, V0: 1}, "n"},
		{"polytropic zero index", Spec{Kind: Polytropic, Index: index(0)}, Initial{T0: 300, V0: 1}, "n"},
		{"polytropic unit index", Spec{Kind: Polytropic, Index: index(1)}, Initial{T0: 300, V0: 1}, "n"},
		{"polytropic infinite index", Spec{Kind: Polytropic, Index: index(math.Inf(1))}, Initial{T0: 300, V0: 1}, "n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sel.Select(tt.spec, tt.initial)
			var invalidErr *InvalidParameterError
			require.True(t, errors.As(err, &invalidErr))
			assert.Equal(t, tt.field, invalidErr.Field)
		})
	}
}

func TestSelectIgnoresIndexOutsidePolytropic(t *testing.T) {
	sel := newAirSelector(t)
	m, err := sel.Select(Spec{Kind: Adiabatic, Index: index(1)}, Initial{T0: 300, V0: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.4, m.Exponent())
}

func TestSelectNegativePolytropicIndex(t *testing.T) {
	sel := newAirSelector(t)
	m, err := sel.Select(Spec{Kind: Polytropic, Index: index(-1)}, Initial{T0: 300, V0: 1})
	require.NoError(t, err)
	assert.Equal(t, -1.0, m.Exponent())
}

func TestSelectUnsupportedKind(t *testing.T) {
	sel := newAirSelector(t)
	_, err := sel.Select(Spec{Kind: "throttling"}, Initial{T0: 300, V0: 1})
	var unsupported *UnsupportedProcessError
	assert.True(t, errors.As(err, &unsupported))
}

func TestSelectPropagatesPropertyError(t *testing.T) {
	sel := newAirSelector(t)
	_, err := sel.Select(Spec{Kind: Isothermal}, Initial{T0: 5000, V0: 1})
	var perr *thermo.PropertyError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, thermo.ErrOutOfRange)
}
