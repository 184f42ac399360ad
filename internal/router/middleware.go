package router

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "pocketledger",
		Name:      "requests_total",
		Help:      "Number of HTTP requests served, partitioned by status code, method and route.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "pocketledger",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
	},
	[]string{"code", "method", "url"},
)

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// registerPrometheusMetrics registers all collectors with the
// default registry.
func registerPrometheusMetrics() error {
	for _, collector := range metrics {
		if err := prometheus.Register(collector); err != nil {
			return fmt.Errorf("could not register metrics with Prometheus: %w", err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics removes all collectors again. Used on
// shutdown and in tests.
func unregisterPrometheusMetrics() bool {
	for _, collector := range metrics {
		if ok := prometheus.Unregister(collector); !ok {
			return false
		}
	}

	return true
}

// MetricsMiddleware records count and duration for every request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Record the route with parameter names instead of values to
		// keep label cardinality bounded
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		code := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(code, c.Request.Method, url).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(code, c.Request.Method, url).Inc()
	}
}
