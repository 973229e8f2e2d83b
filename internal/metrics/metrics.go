// Package metrics records nth-prime runs in a private Prometheus registry
// and exports them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/primesieve/sieve"
)

// Recorder owns a registry and the collectors for one process.
type Recorder struct {
	registry *prometheus.Registry

	// Calls counts lookups by result kind (ok, resource_exhausted, ...).
	Calls *prometheus.CounterVec
	// Widenings counts widen-and-retry rounds.
	Widenings prometheus.Counter
	// BufferBytes observes the size of the final marking buffer.
	BufferBytes prometheus.Histogram
	// Duration observes wall time per lookup.
	Duration prometheus.Histogram
	// LastPrime holds the most recent prime found.
	LastPrime prometheus.Gauge
	// LogEntries counts log entries by level.
	LogEntries *prometheus.CounterVec
}

// NewRecorder creates and registers all collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nthprime_calls_total",
				Help: "Total n-th prime lookups by result",
			},
			[]string{"result"},
		),
		Widenings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nthprime_widenings_total",
				Help: "Total sieve bound widenings after an undershoot",
			},
		),
		BufferBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nthprime_buffer_bytes",
				Help:    "Size of the final marking buffer per lookup",
				Buckets: prometheus.ExponentialBuckets(1024, 8, 8), // 1KiB .. 2GiB
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nthprime_sieve_seconds",
				Help:    "Wall time per lookup",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		LastPrime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "nthprime_last_prime",
				Help: "Most recent prime returned",
			},
		),
		LogEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nthprime_log_entries_total",
				Help: "Total log entries by level",
			},
			[]string{"level"},
		),
	}
	r.registry.MustRegister(r.Calls, r.Widenings, r.BufferBytes, r.Duration, r.LastPrime, r.LogEntries)
	return r
}

// Observe records one lookup. res is ignored when err is non-nil.
func (r *Recorder) Observe(res sieve.Result, err error, elapsed time.Duration) {
	r.Calls.WithLabelValues(sieve.ErrorKind(err)).Inc()
	r.Duration.Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	r.Widenings.Add(float64(res.Widenings))
	if res.BufferBytes > 0 {
		r.BufferBytes.Observe(float64(res.BufferBytes))
	}
	r.LastPrime.Set(float64(res.Prime))
}

// Gatherer exposes the registry, e.g. for promhttp or tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
