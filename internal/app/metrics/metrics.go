// Package metrics exposes Prometheus collectors for the feedback pipeline and
// keeps a rolling per-provider summary for the stats endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for provider calls and extractions
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry
	stats    *statsTracker

	// Provider call metrics
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec
	ProviderErrorsTotal  *prometheus.CounterVec

	// Feedback metrics
	ExtractionsTotal *prometheus.CounterVec
	AnalysisAttempts prometheus.Histogram
	FeedbackScore    prometheus.Histogram

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with every collector registered on a
// private registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "rhetor"
	}

	registry := prometheus.NewRegistry()

	providerCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total number of calls to upstream providers",
		},
		[]string{"kind", "provider", "outcome"},
	)

	providerCallDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream provider call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"kind", "provider"},
	)

	providerErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of provider errors by code",
		},
		[]string{"provider", "code"},
	)

	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_extractions_total",
			Help:      "Feedback extractions by result kind",
		},
		[]string{"result"},
	)

	analysisAttempts := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_attempts",
			Help:      "Generation attempts needed per analysis",
			Buckets:   []float64{1, 2, 3, 5},
		},
	)

	feedbackScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feedback_score",
			Help:      "Distribution of accepted feedback scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		providerCallsTotal,
		providerCallDuration,
		providerErrorsTotal,
		extractionsTotal,
		analysisAttempts,
		feedbackScore,
		httpRequestsTotal,
		httpRequestDuration,
	)

	return &Metrics{
		registry:             registry,
		stats:                newStatsTracker(),
		ProviderCallsTotal:   providerCallsTotal,
		ProviderCallDuration: providerCallDuration,
		ProviderErrorsTotal:  providerErrorsTotal,
		ExtractionsTotal:     extractionsTotal,
		AnalysisAttempts:     analysisAttempts,
		FeedbackScore:        feedbackScore,
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestDuration:  httpRequestDuration,
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSuccess records a successful provider call.
func (m *Metrics) RecordSuccess(kind, provider string, duration time.Duration) {
	m.ProviderCallsTotal.WithLabelValues(kind, provider, OutcomeSuccess).Inc()
	m.ProviderCallDuration.WithLabelValues(kind, provider).Observe(duration.Seconds())
	m.stats.recordSuccess(provider, duration)
}

// RecordFailure records a failed provider call with its error code.
func (m *Metrics) RecordFailure(kind, provider, code string, duration time.Duration) {
	m.ProviderCallsTotal.WithLabelValues(kind, provider, OutcomeFailure).Inc()
	m.ProviderCallDuration.WithLabelValues(kind, provider).Observe(duration.Seconds())
	m.ProviderErrorsTotal.WithLabelValues(provider, code).Inc()
	m.stats.recordFailure(provider, code)
}

// RecordExtraction counts one extraction; result is "ok" or an error kind.
func (m *Metrics) RecordExtraction(result string) {
	m.ExtractionsTotal.WithLabelValues(result).Inc()
}

// RecordAnalysis records a completed analysis.
func (m *Metrics) RecordAnalysis(attempts int, score float64) {
	m.AnalysisAttempts.Observe(float64(attempts))
	m.FeedbackScore.Observe(score)
}

// RecordHTTP records a served HTTP request.
func (m *Metrics) RecordHTTP(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ProviderStats returns a copy of the rolling summary for one provider.
func (m *Metrics) ProviderStats(provider string) ProviderStats {
	return m.stats.get(provider)
}

// Overall returns the summary across all providers.
func (m *Metrics) Overall() OverallStats {
	return m.stats.overall()
}
