package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	fetchesTotal        *prometheus.CounterVec
	fetchDuration       *prometheus.HistogramVec
	cacheLookups        *prometheus.CounterVec
	snapshotsTotal      *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
}

// NewMetrics creates the metrics on their own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotechart_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotechart_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotechart_fetches_total",
				Help: "Market data fetches by provider and outcome",
			},
			[]string{"provider", "kind", "status"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotechart_fetch_duration_seconds",
				Help:    "Market data fetch latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "kind"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotechart_cache_lookups_total",
				Help: "Quote cache lookups by result",
			},
			[]string{"result"},
		),
		snapshotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotechart_snapshots_total",
				Help: "Chart snapshots built",
			},
			[]string{"window"},
		),
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotechart_notifications_total",
				Help: "Telegram notifications by outcome",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.fetchesTotal,
		m.fetchDuration,
		m.cacheLookups,
		m.snapshotsTotal,
		m.notificationsTotal,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// MetricsMiddleware records request counts and latency per route.
func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordFetch records one provider call.
func (m *Metrics) RecordFetch(provider, kind string, err error, took time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.fetchesTotal.WithLabelValues(provider, kind, status).Inc()
	m.fetchDuration.WithLabelValues(provider, kind).Observe(took.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordSnapshot records a chart snapshot build.
func (m *Metrics) RecordSnapshot(window string) {
	if m == nil {
		return
	}
	m.snapshotsTotal.WithLabelValues(window).Inc()
}

// RecordNotification records a Telegram send outcome.
func (m *Metrics) RecordNotification(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.notificationsTotal.WithLabelValues(status).Inc()
}
