package classifier

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK             = "ok"
	outcomeEmpty          = "empty"
	outcomeTimeout        = "timeout"
	outcomeCanceled       = "canceled"
	outcomeUpstreamStatus = "upstream_status"
	outcomeUpstreamError  = "upstream_error"
)

var (
	classifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "folderd",
			Name:      "classify_total",
			Help:      "Classifications by outcome; everything but ok returned the fallback",
		},
		[]string{"outcome"},
	)

	upstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "folderd",
			Subsystem: "upstream",
			Name:      "duration_seconds",
			Help:      "Duration of streamed chat calls in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	upstreamFragments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "folderd",
			Subsystem: "upstream",
			Name:      "fragments",
			Help:      "Text fragments received per chat call",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	upstreamMalformedLines = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "folderd",
			Subsystem: "upstream",
			Name:      "malformed_lines_total",
			Help:      "Stream lines skipped because they failed to decode",
		},
	)
)

func init() {
	prometheus.MustRegister(classifyTotal, upstreamDuration, upstreamFragments, upstreamMalformedLines)
}
