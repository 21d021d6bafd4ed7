// Package metrics exports solver statistics in the Prometheus format.
//
// The command line tool does not serve HTTP. Metrics are collected in a
// private registry and written to a text file for the node exporter's
// textfile collector.
package metrics

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gitrdm/elimination/pkg/elimination"
)

const namespace = "elimination"

// Outcome of one puzzle run.
const (
	StatusSolved        = "solved"
	StatusUnsolved      = "unsolved"
	StatusContradiction = "contradiction"
	StatusError         = "error"
)

// Recorder accumulates statistics of many solver runs. It is safe for
// concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	mu   sync.Mutex
	peak float64

	Puzzles         *prometheus.CounterVec
	Rules           prometheus.Counter
	EdgesRemoved    prometheus.Counter
	WorkItems       prometheus.Counter
	Verifications   prometheus.Counter
	Assertions      prometheus.Counter
	PeakQueue       prometheus.Gauge
	RemainingEdges  *prometheus.GaugeVec
	DurationSeconds prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		Puzzles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "puzzles_total",
			Help:      "Puzzles processed by outcome",
		}, []string{"status"}),
		Rules: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_total",
			Help:      "Rules applied",
		}),
		EdgesRemoved: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_removed_total",
			Help:      "Candidate pairings removed by propagation",
		}),
		WorkItems: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_total",
			Help:      "Removal requests processed by the closure engine",
		}),
		Verifications: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Assertion verification passes",
		}),
		Assertions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assertions_total",
			Help:      "Assertions registered by ordering rules",
		}),
		PeakQueue: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peak_queue_length",
			Help:      "Largest removal queue seen in any run",
		}),
		RemainingEdges: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_edges",
			Help:      "Candidate pairings left after the last run of a puzzle",
		}, []string{"puzzle"}),
		DurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time spent solving one puzzle",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// Observe records one finished run.
func (r *Recorder) Observe(puzzle, status string, stats elimination.Stats, edges int, seconds float64) {
	r.Puzzles.WithLabelValues(status).Inc()
	r.Rules.Add(float64(stats.Rules))
	r.EdgesRemoved.Add(float64(stats.EdgesRemoved))
	r.WorkItems.Add(float64(stats.WorkItems))
	r.Verifications.Add(float64(stats.Verifications))
	r.Assertions.Add(float64(stats.AssertionsRegistered))
	r.RemainingEdges.WithLabelValues(puzzle).Set(float64(edges))
	r.DurationSeconds.Observe(seconds)
	r.raisePeak(float64(stats.PeakQueue))
}

// Failed records a run that stopped with an error.
func (r *Recorder) Failed() {
	r.Puzzles.WithLabelValues(StatusError).Inc()
}

func (r *Recorder) raisePeak(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v > r.peak {
		r.peak = v
		r.PeakQueue.Set(v)
	}
}

// Registry returns the registry holding every metric.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, r.registry), "writing metrics to %s", path)
}
