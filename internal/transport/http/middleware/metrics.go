package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Both binaries share one registry, so every series carries the server name.
var (
	shopRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop",
			Name:      "http_requests_total",
			Help:      "HTTP requests by server, route template, method and status.",
		},
		[]string{"server", "route", "method", "status"},
	)
	shopLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by server and route template.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"server", "route", "method"},
	)
)

func init() { prometheus.MustRegister(shopRequests, shopLatency) }

// unmatchedRoute keeps 404 scans from minting a series per probed URL.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency for the named server
// ("api" or "admin") keyed by route template.
func Metrics(server string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		shopRequests.WithLabelValues(server, route, method, strconv.Itoa(c.Writer.Status())).Inc()
		shopLatency.WithLabelValues(server, route, method).Observe(time.Since(start).Seconds())
	}
}
