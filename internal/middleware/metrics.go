package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MetricsRegistry holds the application-specific Prometheus collectors
	MetricsRegistry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admission_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admission_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	applicationSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admission_portal",
			Subsystem: "applications",
			Name:      "decisions_total",
			Help:      "Total number of review decisions recorded.",
		},
		[]string{"status"},
	)
)

func init() {
	MetricsRegistry.MustRegister(httpRequests, httpDuration, applicationSubmissions)
}

// ObserveDecision counts a recorded review decision
func ObserveDecision(status string) {
	applicationSubmissions.WithLabelValues(status).Inc()
}

// Metrics records request counts and latencies per route. The route template
// is used as the path label so IDs don't blow up cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler serves the Prometheus scrape endpoint
func MetricsHandler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(MetricsRegistry, promhttp.HandlerOpts{})
	return gin.WrapH(handler)
}
