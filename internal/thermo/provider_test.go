package thermo

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFluid(t *testing.T, name string) Fluid {
	t.Helper()
	f, err := LookupFluid(name)
	require.NoError(t, err)
	return f
}

func TestFluidCatalog(t *testing.T) {
	fluids, err := Fluids()
	require.NoError(t, err)
	require.Len(t, fluids, 7)

	for i := 1; i < len(fluids); i++ {
		assert.Less(t, fluids[i-1].Name, fluids[i].Name)
	}

	air := mustFluid(t, "air")
	assert.InEpsilon(t, 287.05, air.R(), 1e-4)
	assert.InEpsilon(t, 1.4, air.Cp()/air.Cv(), 1e-12)

	_, err = LookupFluid("unobtainium")
	assert.ErrorIs(t, err, ErrUnknownFluid)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("", "")
	require.NoError(t, err)
	assert.IsType(t, &IdealGas{}, p)
	assert.Equal(t, DefaultFluid, p.Fluid().Name)

	p, err = NewProvider(ModelPengRobinson, "methane")
	require.NoError(t, err)
	assert.IsType(t, &PengRobinson{}, p)

	_, err = NewProvider("virial", "air")
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = NewProvider(ModelIdealGas, "plasma")
	assert.ErrorIs(t, err, ErrUnknownFluid)
}

func TestIdealGasResolve(t *testing.T) {
	air := mustFluid(t, "air")
	g := NewIdealGas(air)

	sp, err := g.Resolve(TV(300, 1.0))
	require.NoError(t, err)
	assert.Equal(t, 300.0, sp.T)
	assert.Equal(t, 1.0, sp.V)
	assert.InEpsilon(t, air.R()*300, sp.P, 1e-12)

	byPV, err := g.Resolve(PV(sp.P, sp.V))
	require.NoError(t, err)
	assert.InEpsilon(t, sp.T, byPV.T, 1e-12)
	assert.InDelta(t, sp.S, byPV.S, 1e-12)

	byPT, err := g.Resolve(PT(sp.P, sp.T))
	require.NoError(t, err)
	assert.InEpsilon(t, sp.V, byPT.V, 1e-12)
	assert.InDelta(t, sp.S, byPT.S, 1e-12)
}

func TestIdealGasEntropy(t *testing.T) {
	air := mustFluid(t, "air")
	g := NewIdealGas(air)

	ref, err := g.Resolve(PT(RefPressure, RefTemperature))
	require.NoError(t, err)
	assert.InDelta(t, 0, ref.S, 1e-12)

	// isothermal doubling of volume adds R·ln2
	a, err := g.Resolve(TV(400, 0.5))
	require.NoError(t, err)
	b, err := g.Resolve(TV(400, 1.0))
	require.NoError(t, err)
	assert.InDelta(t, air.R()*math.Ln2/1000, b.S-a.S, 1e-12)

	// isochoric doubling of temperature adds cv·ln2
	c, err := g.Resolve(TV(800, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, air.Cv()*math.Ln2/1000, c.S-a.S, 1e-12)
}

func TestIdealGasRejectsInvalidStates(t *testing.T) {
	g := NewIdealGas(mustFluid(t, "air"))

	tests := []struct {
		name  string
		known Known
	}{
		{"negative temperature", TV(-5, 1)},
		{"zero volume", TV(300, 0)},
		{"NaN temperature", TV(math.NaN(), 1)},
		{"infinite pressure", PV(math.Inf(1), 1)},
		{"pressure overflows to infinity", TV(300, 1e-306)},
		{"temperature overflows to infinity", PV(1e300, 1e300)},
		{"temperature above window", TV(5000, 1)},
		{"temperature below window", PT(101325, 10)},
		{"pressure below floor", PV(1e-4, 1e6)},
		{"unknown basis", Known{Basis: Basis(9), T: 300, V: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Resolve(tt.known)
			require.Error(t, err)

			var perr *PropertyError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "air", perr.Fluid)
			assert.NotEmpty(t, perr.Reason)
		})
	}
}

func TestPengRobinsonNearIdealForAir(t *testing.T) {
	air := mustFluid(t, "air")
	pr := NewPengRobinson(air)

	sp, err := pr.Resolve(TV(300, 1.0))
	require.NoError(t, err)
	assert.InEpsilon(t, air.R()*300, sp.P, 1e-3)

	ideal, err := NewIdealGas(air).Resolve(TV(300, 1.0))
	require.NoError(t, err)
	assert.InDelta(t, ideal.S, sp.S, 1e-3)
}

func TestPengRobinsonRoundTrip(t *testing.T) {
	tests := []struct {
		fluid string
		t, v  float64
	}{
		{"air", 300, 1.0},
		{"nitrogen", 150, 0.01},
		{"carbon_dioxide", 320, 0.003},
		{"methane", 250, 0.05},
		{"water", 500, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.fluid, func(t *testing.T) {
			pr := NewPengRobinson(mustFluid(t, tt.fluid))

			sp, err := pr.Resolve(TV(tt.t, tt.v))
			require.NoError(t, err)

			byPV, err := pr.Resolve(PV(sp.P, sp.V))
			require.NoError(t, err)
			assert.InEpsilon(t, tt.t, byPV.T, 1e-10)
			assert.InDelta(t, sp.S, byPV.S, 1e-9)

			byPT, err := pr.Resolve(PT(sp.P, sp.T))
			require.NoError(t, err)
			assert.InEpsilon(t, tt.v, byPT.V, 1e-8)
		})
	}
}

func TestPengRobinsonPhaseChecks(t *testing.T) {
	water := NewPengRobinson(mustFluid(t, "water"))

	_, err := water.Resolve(TV(300, 1.0))
	assert.ErrorIs(t, err, ErrTwoPhase)

	_, err = water.Resolve(TV(300, water.CoVolume()*0.9))
	assert.ErrorIs(t, err, ErrOutOfRange)

	sat, err := water.saturation(373.15)
	require.NoError(t, err)
	// Peng-Robinson reproduces the normal boiling point within a few percent
	assert.InEpsilon(t, 101325, sat.P, 0.05)
	assert.Less(t, sat.VL, sat.VV)

	_, err = water.saturation(700)
	assert.Error(t, err)
}

func TestPengRobinsonLogsSaturationFallback(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	water := NewPengRobinson(mustFluid(t, "water"))
	water.satSteps = 1

	// superheated vapour: accepted on the stability test once the
	// saturation solve gives up
	sp, err := water.Resolve(TV(300, 100))
	require.NoError(t, err)
	assert.Equal(t, 300.0, sp.T)

	assert.Contains(t, buf.String(), "Saturation solve failed")
	assert.Contains(t, buf.String(), `"fluid":"water"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestCheckFiniteRejectsOverflow(t *testing.T) {
	air := mustFluid(t, "air")
	known := TV(300, 1)

	assert.NoError(t, checkFinite(air, known, StatePoint{T: 300, P: 1e5, V: 1, S: 0.1}))

	err := checkFinite(air, known, StatePoint{T: 300, P: math.Inf(1), V: 1, S: 0.1})
	assert.ErrorIs(t, err, ErrOutOfRange)
	err = checkFinite(air, known, StatePoint{T: 300, P: 1e5, V: 1, S: math.NaN()})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPengRobinsonEntropyIncreasesWithTemperature(t *testing.T) {
	pr := NewPengRobinson(mustFluid(t, "carbon_dioxide"))

	prev := math.Inf(-1)
	for _, temp := range []float64{320, 360, 400, 480, 600} {
		sp, err := pr.Resolve(TV(temp, 0.01))
		require.NoError(t, err)
		assert.Greater(t, sp.S, prev)
		prev = sp.S
	}
}

func TestCubicRoots(t *testing.T) {
	// (x-1)(x-2)(x-3)
	roots := cubicRoots(-6, 11, -6)
	require.Len(t, roots, 3)
	assert.InDelta(t, 1, roots[0], 1e-12)
	assert.InDelta(t, 2, roots[1], 1e-12)
	assert.InDelta(t, 3, roots[2], 1e-12)

	// (x-2)(x²+1)
	roots = cubicRoots(-2, 1, -2)
	require.Len(t, roots, 1)
	assert.InDelta(t, 2, roots[0], 1e-12)
}
