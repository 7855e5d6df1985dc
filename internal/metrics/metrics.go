// Package metrics holds the bot's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weather_bot"

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	events        *prometheus.CounterVec
	unrecognized  prometheus.Counter
	throttled     prometheus.Counter
	storeErrors   *prometheus.CounterVec
	providerCalls *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Routed events by intent.",
		}, []string{"intent"}),
		unrecognized: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unrecognized_total",
			Help:      "Events that matched no route.",
		}),
		throttled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throttled_total",
			Help:      "Events dropped by the flood gate.",
		}),
		storeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Preference or session store failures by operation.",
		}, []string{"op"}),
		providerCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Forecast provider calls by mode and outcome.",
		}, []string{"mode", "outcome"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dialogue_transitions_total",
			Help:      "Setup dialogue state transitions.",
		}, []string{"from", "to"}),
	}
}

func (m *Metrics) Event(intent string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(intent).Inc()
}

func (m *Metrics) Unrecognized() {
	if m == nil {
		return
	}
	m.unrecognized.Inc()
}

func (m *Metrics) Throttled() {
	if m == nil {
		return
	}
	m.throttled.Inc()
}

func (m *Metrics) StoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// ProviderRequest records one provider call; outcome is "ok" or "error".
func (m *Metrics) ProviderRequest(mode, outcome string) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
