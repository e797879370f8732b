// Package metrics provides the Prometheus instrumentation registry for code-assist.
package metrics

import (
	"net/http"
	"time"

	"code-assist/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns every metric family exported by the process. All instruments
// are atomic, so recording never takes a lock shared with request I/O.
type Registry struct {
	registry *prometheus.Registry

	// RequestsTotal counts inbound /ask and /assist requests, whatever their outcome.
	RequestsTotal prometheus.Counter
	// ResponseTime holds the elapsed seconds of the most recent retrieval.
	ResponseTime prometheus.Gauge
	// OutcomesTotal counts retrievals by outcome.
	OutcomesTotal *prometheus.CounterVec
	// RetrievalDuration observes retrieval latency.
	RetrievalDuration prometheus.Histogram
}

// NewRegistry creates an isolated registry. withRuntime adds the Go and
// process collectors.
func NewRegistry(withRuntime bool) *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		RequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests made.",
		}),
		ResponseTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "response_time_seconds",
			Help: "Response time in seconds.",
		}),
		OutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrieval_outcomes_total",
				Help: "Total number of retrievals by outcome.",
			},
			[]string{"outcome"},
		),
		RetrievalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "retrieval_duration_seconds",
			Help:    "Duration of search backend retrievals in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(r.RequestsTotal, r.ResponseTime, r.OutcomesTotal, r.RetrievalDuration)
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// IncRequests records one inbound request.
func (r *Registry) IncRequests() {
	r.RequestsTotal.Inc()
}

// ObserveRetrieval records the outcome and latency of one retrieval.
func (r *Registry) ObserveRetrieval(kind domain.OutcomeKind, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	r.ResponseTime.Set(seconds)
	r.RetrievalDuration.Observe(seconds)
	r.OutcomesTotal.WithLabelValues(kind.String()).Inc()
}

// Gatherer exposes the registry for snapshots.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler renders a snapshot of every registered family in the text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
