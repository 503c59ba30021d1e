package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe("adiabatic", OutcomeOK, 3*time.Millisecond)
	m.Observe("adiabatic", OutcomeOK, time.Millisecond)
	m.Observe("polytropic", OutcomeInvalid, 0)
	m.CacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Trajectories.WithLabelValues("adiabatic", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Trajectories.WithLabelValues("polytropic", OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["nonflow_trajectory_duration_seconds"])
	assert.True(t, names["go_goroutines"])
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("isothermal", OutcomeOK, time.Second)
		m.CacheHit()
	})
}
