package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"gigchain/core/events"
)

// EngineMetrics counts the transitions the native engines emit.
type EngineMetrics struct {
	transitions *prometheus.CounterVec
}

var (
	enginesOnce     sync.Once
	enginesRegistry *EngineMetrics
)

// Engines returns the process-wide engine metrics, registering the collectors
// on first use.
func Engines() *EngineMetrics {
	enginesOnce.Do(func() {
		enginesRegistry = &EngineMetrics{
			transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "gigchain_engine_transitions_total",
				Help: "Count of successful engine state transitions by event type.",
			}, []string{"type"}),
		}
		prometheus.MustRegister(enginesRegistry.transitions)
	})
	return enginesRegistry
}

// ObserveTransition increments the transition counter for the event type.
func (m *EngineMetrics) ObserveTransition(eventType string) {
	if m == nil || eventType == "" {
		return
	}
	m.transitions.WithLabelValues(eventType).Inc()
}

// Emitter adapts the engine metrics into an events.Emitter so engines can
// feed the counters directly.
type Emitter struct {
	metrics *EngineMetrics
}

// NewEmitter returns an emitter backed by the process-wide engine metrics.
func NewEmitter() *Emitter {
	return &Emitter{metrics: Engines()}
}

// Emit implements events.Emitter.
func (e *Emitter) Emit(evt events.Event) {
	if e == nil || evt == nil {
		return
	}
	e.metrics.ObserveTransition(evt.EventType())
}
