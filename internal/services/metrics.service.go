package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const METRICS_NAMESPACE = "estatehub"

// MetricsService owns the prometheus registry served at /metrics. Methods are
// no-ops on a nil receiver.
type MetricsService struct {
	Registry *prometheus.Registry

	propertiesCreated  prometheus.Counter
	statusChanges      *prometheus.CounterVec
	updatesApproved    prometheus.Counter
	notifications      *prometheus.CounterVec
	emails             *prometheus.CounterVec
	reviewsCreated     prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		Registry: registry,
		propertiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "properties_created_total",
			Help:      "Total number of properties submitted for moderation.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "property_status_changes_total",
			Help:      "Total number of moderation decisions by resulting status.",
		}, []string{"status"}),
		updatesApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "property_updates_approved_total",
			Help:      "Total number of staged property updates applied.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "notifications_created_total",
			Help:      "Total number of notifications created by type.",
		}, []string{"type"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "emails_total",
			Help:      "Total number of email delivery attempts by result.",
		}, []string{"result"}),
		reviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "reviews_created_total",
			Help:      "Total number of reviews created.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.propertiesCreated,
		m.statusChanges,
		m.updatesApproved,
		m.notifications,
		m.emails,
		m.reviewsCreated,
		m.httpRequests,
		m.httpRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *MetricsService) PropertyCreated() {
	if m == nil {
		return
	}
	m.propertiesCreated.Inc()
}

func (m *MetricsService) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *MetricsService) UpdateApproved() {
	if m == nil {
		return
	}
	m.updatesApproved.Inc()
}

func (m *MetricsService) NotificationCreated(notificationType string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(notificationType).Inc()
}

func (m *MetricsService) EmailAttempted(sent bool) {
	if m == nil {
		return
	}
	result := "failed"
	if sent {
		result = "sent"
	}
	m.emails.WithLabelValues(result).Inc()
}

func (m *MetricsService) ReviewCreated() {
	if m == nil {
		return
	}
	m.reviewsCreated.Inc()
}

func (m *MetricsService) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpRequestLatency.WithLabelValues(method, route).Observe(seconds)
}
