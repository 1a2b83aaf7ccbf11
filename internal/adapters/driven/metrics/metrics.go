// Package metrics exposes AI gateway activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.GatewayMetrics = (*Recorder)(nil)

// Recorder counts gateway calls on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	// GatewayCalls counts gateway calls.
	// Labels: capability, outcome (success, fallback, error)
	GatewayCalls *prometheus.CounterVec
}

// New creates a Recorder with a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Recorder{
		registry: reg,
		GatewayCalls: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docdeck",
				Subsystem: "gateway",
				Name:      "calls_total",
				Help:      "Total number of AI gateway calls by capability and outcome",
			},
			[]string{"capability", "outcome"},
		),
	}
}

// ObserveCall counts one gateway call.
func (r *Recorder) ObserveCall(capability domain.Capability, outcome string) {
	r.GatewayCalls.WithLabelValues(string(capability), outcome).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
