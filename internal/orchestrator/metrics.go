package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics publishes step counts, tool-call counts, and decision latency,
// grounded on the teacher's own github.com/prometheus/client_golang
// dependency (internal/observability/metrics.go), repointed here from
// chat-gateway counters to run-level budgets.
type Metrics struct {
	stepsTotal       prometheus.Counter
	toolCallsTotal   prometheus.Counter
	decisionLatency  prometheus.Histogram
	runsTotal        *prometheus.CounterVec
	budgetExhausted  prometheus.Counter
}

// NewMetrics registers the orchestrator's metric families against reg.
// Pass prometheus.NewRegistry() (or nil to use the default registerer)
// for an isolated registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "acc",
			Name:      "steps_total",
			Help:      "Total orchestrator steps executed.",
		}),
		toolCallsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "acc",
			Name:      "tool_calls_total",
			Help:      "Total tool calls executed across all runs.",
		}),
		decisionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "acc",
			Name:      "decision_latency_seconds",
			Help:      "Latency of Decider.Decide calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "acc",
			Name:      "runs_total",
			Help:      "Total runs by terminal outcome.",
		}, []string{"outcome"}),
		budgetExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "acc",
			Name:      "budget_exhausted_total",
			Help:      "Runs that terminated due to max-steps or max-duration exhaustion.",
		}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stepsTotal, m.toolCallsTotal, m.decisionLatency, m.runsTotal, m.budgetExhausted)
	return m
}

func (m *Metrics) recordStep() {
	if m == nil {
		return
	}
	m.stepsTotal.Inc()
}

func (m *Metrics) recordToolCalls(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.toolCallsTotal.Add(float64(n))
}

func (m *Metrics) recordDecisionLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.decisionLatency.Observe(d.Seconds())
}

func (m *Metrics) recordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordBudgetExhausted() {
	if m == nil {
		return
	}
	m.budgetExhausted.Inc()
}
