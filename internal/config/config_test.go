package config

import (
	"testing"
	"time"
)

func TestDefaultBudgets(t *testing.T) {
	cfg := Default()
	if cfg.Budgets.MaxSteps != 15 || cfg.Budgets.MaxDurationSec != 90 {
		t.Errorf("unexpected default budgets: %+v", cfg.Budgets)
	}
	if cfg.MaxDuration() != 90*time.Second {
		t.Errorf("MaxDuration() = %v, want 90s", cfg.MaxDuration())
	}
	if cfg.StepDelay() != 1500*time.Millisecond {
		t.Errorf("StepDelay() = %v, want 1500ms", cfg.StepDelay())
	}
}

func TestAppTableConversion(t *testing.T) {
	cfg := Default()
	cfg.Apps = []AppEntryConfig{
		{Label: "YouTube", Target: "com.google.android.youtube", Aliases: []string{"yt"}},
	}
	table := cfg.AppTable()
	if len(table) != 1 || table[0].Label != "YouTube" || len(table[0].Aliases) != 1 {
		t.Errorf("got %+v", table)
	}
}

func TestAppTableEmptyWhenNoApps(t *testing.T) {
	cfg := Default()
	table := cfg.AppTable()
	if len(table) != 0 {
		t.Errorf("expected empty app table, got %+v", table)
	}
}
