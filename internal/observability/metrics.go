package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pointcode",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pointcode",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	conversions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pointcode",
			Subsystem: "convert",
			Name:      "operations_total",
			Help:      "Conversion facade operations by outcome.",
		},
		[]string{"op", "schema", "outcome"},
	)
)

// RegisterMetrics registers the collectors with the default registry. Safe to
// call repeatedly.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, conversions)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordConversion counts one facade outcome. The outcome label is "ok" or
// the error kind ("out_of_range", ...); foreign errors count as "error".
func RecordConversion(op, schemaID string, err error) {
	RegisterMetrics()
	conversions.WithLabelValues(op, schemaID, OutcomeLabel(err)).Inc()
}

func OutcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if ce, ok := pointcode.AsError(err); ok {
		return ce.Kind.String()
	}
	return "error"
}

// ConversionMetrics adapts RecordConversion to convert.Observer.
type ConversionMetrics struct{}

func (ConversionMetrics) ObserveConversion(op, schemaID string, err error) {
	RecordConversion(op, schemaID, err)
}
