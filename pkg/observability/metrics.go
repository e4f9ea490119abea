package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	duplicates  *prometheus.CounterVec
	inflight    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_transitions_total",
				Help: "Total number of state transitions, by outcome",
			},
			[]string{"engine", "state", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_transition_duration_seconds",
				Help:    "Duration of state transitions, listener included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine", "state"},
		),
		duplicates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_duplicate_paths_total",
				Help: "Total number of transition paths rejected as replays",
			},
			[]string{"engine", "path"},
		),
		inflight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "automata_transitions_in_flight",
				Help: "Transitions entered and not yet left",
			},
			[]string{"engine"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.transitions, m.duration, m.duplicates, m.inflight)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.inflight.WithLabelValues(e.Engine).Inc()
		},
		OnStateLeave: func(_ context.Context, e *domain.StateEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.inflight.WithLabelValues(e.Engine).Dec()
			m.transitions.WithLabelValues(e.Engine, e.State, outcome).Inc()
			m.duration.WithLabelValues(e.Engine, e.State).Observe(e.Duration.Seconds())
		},
		OnDuplicatePath: func(_ context.Context, e *domain.PathEvent) {
			m.duplicates.WithLabelValues(e.Engine, e.Path).Inc()
		},
	}
}
