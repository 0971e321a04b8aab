package orchestrator

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetricsRegistersAndRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.recordStep()
	m.recordStep()
	m.recordToolCalls(3)
	m.recordDecisionLatency(250 * time.Millisecond)
	m.recordOutcome(string(OutcomeDone))
	m.recordBudgetExhausted()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("expected at least one registered metric family")
	}

	var stepsValue float64
	for _, fam := range families {
		if fam.GetName() == "acc_steps_total" {
			stepsValue = findCounterValue(fam)
		}
	}
	if stepsValue != 2 {
		t.Errorf("acc_steps_total = %v, want 2", stepsValue)
	}
}

func TestNilMetricsMethodsAreNoOps(t *testing.T) {
	var m *Metrics
	m.recordStep()
	m.recordToolCalls(5)
	m.recordDecisionLatency(time.Second)
	m.recordOutcome("done")
	m.recordBudgetExhausted()
}

func findCounterValue(fam *dto.MetricFamily) float64 {
	for _, metric := range fam.GetMetric() {
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
	}
	return 0
}
