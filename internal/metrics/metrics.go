// Package metrics exposes Prometheus instruments for trajectory computation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcomes recorded on nonflow_trajectories_total.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeProperty = "property_error"
	OutcomeError    = "error"
)

// Metrics groups the service instruments and the registry they live on.
type Metrics struct {
	Registry     *prometheus.Registry
	Trajectories *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	CacheHits    prometheus.Counter
}

// New creates the instruments on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Trajectories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nonflow_trajectories_total",
				Help: "Trajectory requests by process and outcome",
			},
			[]string{"process", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nonflow_trajectory_duration_seconds",
				Help:    "Time spent computing a trajectory",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"process"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nonflow_cache_hits_total",
			Help: "Trajectory requests served from the cache",
		}),
	}
	reg.MustRegister(
		m.Trajectories,
		m.Duration,
		m.CacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one trajectory request. Safe on a nil receiver.
func (m *Metrics) Observe(process, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Trajectories.WithLabelValues(process, outcome).Inc()
	if outcome == OutcomeOK {
		m.Duration.WithLabelValues(process).Observe(elapsed.Seconds())
	}
}

// CacheHit records a cache hit. Safe on a nil receiver.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}
