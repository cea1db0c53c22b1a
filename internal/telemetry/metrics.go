package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for tool invocations and pipeline runs.
type Metrics struct {
	invocationsTotal *prometheus.CounterVec
	invocationTime   *prometheus.HistogramVec
	tokensTotal      *prometheus.CounterVec
	costsTotal       *prometheus.CounterVec
	pipelinesTotal   *prometheus.CounterVec
	handoffsTotal    *prometheus.CounterVec
}

// NewMetrics registers the orchestrator metric vectors with the default
// Prometheus registerer.
func NewMetrics() *Metrics {
	return newMetricsWith(prometheus.DefaultRegisterer)
}

func newMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		invocationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_tool_invocations_total",
				Help: "Total number of tool invocations by tool and status",
			},
			[]string{"tool_id", "status"},
		),
		invocationTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orchestrator_tool_invocation_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool_id"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_tool_tokens_total",
				Help: "Total number of tokens reported by tool invocations",
			},
			[]string{"tool_id"},
		),
		costsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_tool_costs_usd_total",
				Help: "Total cost in USD reported by tool invocations",
			},
			[]string{"tool_id"},
		),
		pipelinesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_pipelines_total",
				Help: "Total number of finished pipelines by terminal status",
			},
			[]string{"status"},
		),
		handoffsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_handoffs_total",
				Help: "Total number of agent handoffs by recommendation status",
			},
			[]string{"recommended"},
		),
	}
}

// ObserveInvocation records one tool invocation.
func (m *Metrics) ObserveInvocation(toolID string, success bool, tokens int, cost float64, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.invocationsTotal.WithLabelValues(toolID, status).Inc()
	m.invocationTime.WithLabelValues(toolID).Observe(duration.Seconds())
	if success {
		m.tokensTotal.WithLabelValues(toolID).Add(float64(tokens))
		m.costsTotal.WithLabelValues(toolID).Add(cost)
	}
}

// ObservePipeline records a pipeline reaching a terminal status.
func (m *Metrics) ObservePipeline(status string) {
	if m == nil {
		return
	}
	m.pipelinesTotal.WithLabelValues(status).Inc()
}

// ObserveHandoff records a handoff; recommended reports whether the
// destination was on the source's advisory chain list.
func (m *Metrics) ObserveHandoff(recommended bool) {
	if m == nil {
		return
	}
	label := "no"
	if recommended {
		label = "yes"
	}
	m.handoffsTotal.WithLabelValues(label).Inc()
}
