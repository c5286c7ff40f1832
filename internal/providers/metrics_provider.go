package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCalculations(method string)
	IncSingularFallbacks(event string)
	IncScheduled(category string)
	IncCanceled(category string)
	IncSuppressed(category string)
	IncSchedulingFailures(category string)
	IncStaleSkipped(category string)
	IncMilestones(domain string)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	calculations        *prometheus.CounterVec
	singularFallbacks   *prometheus.CounterVec
	scheduled           *prometheus.CounterVec
	canceled            *prometheus.CounterVec
	suppressed          *prometheus.CounterVec
	schedulingFailures  *prometheus.CounterVec
	staleSkipped        *prometheus.CounterVec
	milestones          *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func NewMetricsProvider() MetricsProviderInterface {
	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_http_requests_total",
			Help: "HTTP requests by endpoint and status class.",
		}, []string{"endpoint", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mihrab_http_request_duration_seconds",
			Help:    "HTTP request latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		calculations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_calculations_total",
			Help: "Instant-set calculations by method.",
		}, []string{"method"}),
		singularFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_singular_fallbacks_total",
			Help: "High-latitude night-fraction fallbacks by event.",
		}, []string{"event"}),
		scheduled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_notifications_scheduled_total",
			Help: "Notifications handed to the provider by category.",
		}, []string{"category"}),
		canceled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_notifications_canceled_total",
			Help: "Notifications canceled by category.",
		}, []string{"category"}),
		suppressed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_notifications_suppressed_total",
			Help: "Notifications suppressed by quiet hours, by category.",
		}, []string{"category"}),
		schedulingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_scheduling_failures_total",
			Help: "Provider schedule/cancel failures after retry, by category.",
		}, []string{"category"}),
		staleSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_stale_triggers_skipped_total",
			Help: "Trigger times already in the past at planning time.",
		}, []string{"category"}),
		milestones: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mihrab_milestones_awarded_total",
			Help: "Milestones awarded by domain.",
		}, []string{"domain"}),
		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mihrab_persistence_duration_seconds",
			Help:    "Journal snapshot save latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCalculations(method string) {
	m.calculations.WithLabelValues(method).Inc()
}

func (m *MetricsProvider) IncSingularFallbacks(event string) {
	m.singularFallbacks.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) IncScheduled(category string) {
	m.scheduled.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) IncCanceled(category string) {
	m.canceled.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) IncSuppressed(category string) {
	m.suppressed.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) IncSchedulingFailures(category string) {
	m.schedulingFailures.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) IncStaleSkipped(category string) {
	m.staleSkipped.WithLabelValues(category).Inc()
}

func (m *MetricsProvider) IncMilestones(domain string) {
	m.milestones.WithLabelValues(domain).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
