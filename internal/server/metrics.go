package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts tool calls by tool and outcome.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rejected *prometheus.CounterVec
}

// NewMetrics registers the funcd collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcd",
			Name:      "tool_calls_total",
			Help:      "Tool calls handled, by tool and outcome (ok or error).",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funcd",
			Name:      "tool_call_duration_seconds",
			Help:      "Time spent running a tool call.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"tool"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcd",
			Name:      "rejected_requests_total",
			Help:      "Requests rejected before dispatch, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.calls, m.duration, m.rejected)
	return m
}

func (m *Metrics) observe(tool string, seconds float64, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.calls.WithLabelValues(tool, outcome).Inc()
	m.duration.WithLabelValues(tool).Observe(seconds)
}

func (m *Metrics) reject(reason string) { m.rejected.WithLabelValues(reason).Inc() }
