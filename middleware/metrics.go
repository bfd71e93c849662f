package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/traits"
)

// Metrics records Prometheus counters and latency histograms per node kind.
type Metrics struct {
	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "traits",
			Subsystem: "node",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func newHistogramVec(name, help string, buckets []float64, labels []string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "traits",
			Subsystem: "node",
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// NewMetrics creates the collectors and registers them with registerer.
// A nil registerer means prometheus.DefaultRegisterer. Collectors that are
// already registered are reused.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		processTotal:    newCounterVec("process_total", "Total number of node Process calls by outcome", []string{"kind", "outcome"}),
		processDuration: newHistogramVec("process_duration_seconds", "Duration of node Process calls", prometheus.DefBuckets, []string{"kind"}),
	}

	var err error
	if m.processTotal, err = register(registerer, m.processTotal); err != nil {
		return nil, err
	}
	if m.processDuration, err = register(registerer, m.processDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Middleware returns the middleware recording into m.
func (m *Metrics) Middleware() Middleware {
	return Wrap(func(kind string, next ProcessFunc) ProcessFunc {
		return func(ctx context.Context, values map[string]any) (map[string]any, error) {
			start := time.Now()
			out, err := next(ctx, values)
			m.processDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			m.processTotal.WithLabelValues(kind, outcome(err)).Inc()
			return out, err
		}
	})
}

// outcome classifies a Process result for the outcome label.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	return "error_" + string(phaseOf(err))
}

// phaseOf reports the lifecycle phase of a processing failure.
func phaseOf(err error) traits.Phase {
	var pe *traits.ProcessingError
	if errors.As(err, &pe) {
		return pe.Phase
	}
	return traits.PhaseExecute
}
