package observability

import (
	"context"
	"fmt"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "compass"

// Metrics holds the engine collectors.
type Metrics struct {
	turns        *prometheus.CounterVec
	intents      *prometheus.CounterVec
	routeDenials *prometheus.CounterVec
	commands     *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "turns_total",
				Help:      "Turns processed, by starting state and response key.",
			},
			[]string{"state", "response_key"},
		),
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "intents_total",
				Help:      "Effective intents after refinement and flow control.",
			},
			[]string{"intent", "flow"},
		),
		routeDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "route_denials_total",
				Help:      "Intents the router refused in a state.",
			},
			[]string{"state", "intent"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cart_commands_total",
				Help:      "Cart commands applied.",
			},
			[]string{"command", "applied"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "turn_duration_seconds",
				Help:      "Turn latency by handler.",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"handler"},
		),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.turns, m.intents, m.routeDenials, m.commands, m.turnDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIntentResolved: func(_ context.Context, e *domain.IntentEvent) {
			m.intents.WithLabelValues(string(e.Effective), string(e.Flow)).Inc()
		},
		OnRouteDenied: func(_ context.Context, e *domain.TurnEvent) {
			m.routeDenials.WithLabelValues(string(e.State), string(e.Intent)).Inc()
		},
		OnCommandApplied: func(_ context.Context, e *domain.CommandEvent) {
			m.commands.WithLabelValues(e.Command, fmt.Sprint(e.Applied)).Inc()
		},
		OnTurnEnd: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(string(e.State), e.ResponseKey).Inc()
			handler := string(e.Handler)
			if handler == "" {
				handler = "none"
			}
			m.turnDuration.WithLabelValues(handler).Observe(e.Duration.Seconds())
		},
	}
}
