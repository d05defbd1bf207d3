package gateway

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_admin",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Total number of order API requests, by operation and HTTP status.",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "order_admin",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Order API request latencies in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

// observeRequest records one round trip. A status of 0 means the
// request never produced a response.
func observeRequest(operation string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
