package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds every collector of the service. Tests build their own
// registry so counters start from zero.
type Registry struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	leadSubmissions     *prometheus.CounterVec
	leadStoreDuration   *prometheus.HistogramVec
}

// Submission results recorded by ObserveSubmission
const (
	ResultCreated      = "created"
	ResultInvalid      = "invalid"
	ResultUnconfigured = "unconfigured"
	ResultFailed       = "failed"
)

// NewRegistry creates and registers all collectors plus the Go and process collectors
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kore_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kore_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		leadSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kore_lead_submissions_total",
			Help: "Lead submissions by storage backend and result",
		}, []string{"backend", "result"}),
		leadStoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kore_lead_store_duration_seconds",
			Help:    "Duration of lead store writes",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	reg.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.leadSubmissions,
		r.leadStoreDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer exposes the registry for the /metrics handler
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveHTTPRequest records an HTTP request metric
func (r *Registry) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveSubmission counts one lead submission outcome
func (r *Registry) ObserveSubmission(backend, result string) {
	r.leadSubmissions.WithLabelValues(backend, result).Inc()
}

// ObserveStoreWrite records how long a lead store write took
func (r *Registry) ObserveStoreWrite(backend string, duration time.Duration) {
	r.leadStoreDuration.WithLabelValues(backend).Observe(duration.Seconds())
}
