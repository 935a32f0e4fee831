package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts total HTTP requests
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filebridge",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	// httpRequestDuration measures request latency
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "filebridge",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method"},
	)

	// httpRequestsInFlight tracks concurrent requests
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "filebridge",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// httpResponseSize measures response body size
	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "filebridge",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 8), // 100B to 10GB
		},
		[]string{"method"},
	)
)

// File-serving metrics
var (
	// FilesServedTotal counts file responses by outcome
	FilesServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filebridge",
			Subsystem: "files",
			Name:      "served_total",
			Help:      "Total number of file requests by outcome",
		},
		[]string{"outcome"}, // served, listing, not_found, forbidden, bad_request, error
	)

	// FileBytesSent tracks bytes streamed to clients
	FileBytesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "filebridge",
			Subsystem: "files",
			Name:      "bytes_sent_total",
			Help:      "Total file bytes written to clients",
		},
	)
)

// Metrics returns Prometheus metrics middleware
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(method, status).Inc()
		httpRequestDuration.WithLabelValues(method).Observe(duration)
		httpResponseSize.WithLabelValues(method).Observe(float64(c.Writer.Size()))
	}
}

// RecordFileServed records the outcome of a file request
func RecordFileServed(outcome string, bytes int64) {
	FilesServedTotal.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		FileBytesSent.Add(float64(bytes))
	}
}
