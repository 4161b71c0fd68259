package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go-gin-gorm-shop/internal/domain"
)

const (
	outcomeOK       = "ok"
	outcomeCanceled = "canceled"
	outcomeError    = "error"
)

var (
	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_requests_total", Help: "Count of dispatched requests"},
		[]string{"request", "outcome"},
	)
	dispatchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Latency of dispatched requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"request"},
	)
)

func init() { prometheus.MustRegister(dispatchTotal, dispatchLatency) }

func observe(name, outcome string, d time.Duration) {
	dispatchTotal.WithLabelValues(name, outcome).Inc()
	dispatchLatency.WithLabelValues(name).Observe(d.Seconds())
}

// outcomeOf labels err by domain kind; store and programming errors collapse to "error".
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	}
	if k := domain.KindOf(err); k != "" {
		return string(k)
	}
	return outcomeError
}
