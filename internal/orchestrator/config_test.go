package orchestrator

import (
	"testing"
	"time"
)

func TestSanitizeClampsToValidRanges(t *testing.T) {
	c := sanitize(Config{MaxSteps: 1, MaxDuration: 5 * time.Second, StepDelay: 10 * time.Millisecond})
	if c.MaxSteps != 15 {
		t.Errorf("MaxSteps = %d, want clamped to 15", c.MaxSteps)
	}
	if c.MaxDuration != 60*time.Second {
		t.Errorf("MaxDuration = %v, want clamped to 60s", c.MaxDuration)
	}
	if c.StepDelay != time.Second {
		t.Errorf("StepDelay = %v, want clamped to 1s", c.StepDelay)
	}

	c = sanitize(Config{MaxSteps: 1000, MaxDuration: time.Hour, StepDelay: time.Minute})
	if c.MaxSteps != 30 {
		t.Errorf("MaxSteps = %d, want clamped to 30", c.MaxSteps)
	}
	if c.MaxDuration != 180*time.Second {
		t.Errorf("MaxDuration = %v, want clamped to 180s", c.MaxDuration)
	}
	if c.StepDelay != 2*time.Second {
		t.Errorf("StepDelay = %v, want clamped to 2s", c.StepDelay)
	}
}

func TestSanitizeDefaultsZeroToolIterations(t *testing.T) {
	c := sanitize(Config{MaxSteps: 15, MaxDuration: 60 * time.Second, StepDelay: time.Second})
	if c.MaxToolIterations != 5 {
		t.Errorf("MaxToolIterations = %d, want default 5", c.MaxToolIterations)
	}
}

func TestSanitizeWithinRangeUnchanged(t *testing.T) {
	c := sanitize(Config{MaxSteps: 20, MaxDuration: 100 * time.Second, StepDelay: 1500 * time.Millisecond, MaxToolIterations: 3})
	if c.MaxSteps != 20 || c.MaxDuration != 100*time.Second || c.StepDelay != 1500*time.Millisecond || c.MaxToolIterations != 3 {
		t.Errorf("expected in-range config to pass through unchanged, got %+v", c)
	}
}
