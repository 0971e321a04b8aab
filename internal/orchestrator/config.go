package orchestrator

import (
	"time"

	"github.com/haasonsaas/acc/internal/screen"
)

// Config holds the run budgets and knobs named in §4.6/§5.
type Config struct {
	MaxSteps          int
	MaxDuration       time.Duration
	StepDelay         time.Duration
	MaxToolIterations int
	VisionEnabled     bool
	PlanningEnabled   bool
	MaxElements       int
	MaxTextLength     int
}

// DefaultConfig returns the spec's default budgets: 15 steps, 90s
// duration, 1.5s inter-step delay, 30-element/50-char screen snapshots.
func DefaultConfig() Config {
	return Config{
		MaxSteps:          15,
		MaxDuration:       90 * time.Second,
		StepDelay:         1500 * time.Millisecond,
		MaxToolIterations: 5,
		VisionEnabled:     false,
		PlanningEnabled:   false,
		MaxElements:       screen.DefaultMaxElements,
		MaxTextLength:     screen.DefaultMaxTextLength,
	}
}

// sanitize clamps Config fields to the spec's valid ranges (15-30 steps,
// 60-180s duration, 1-2s delay), mirroring the teacher's
// sanitizeLoopConfig defensive-default pattern.
func sanitize(c Config) Config {
	if c.MaxSteps < 15 {
		c.MaxSteps = 15
	}
	if c.MaxSteps > 30 {
		c.MaxSteps = 30
	}
	if c.MaxDuration < 60*time.Second {
		c.MaxDuration = 60 * time.Second
	}
	if c.MaxDuration > 180*time.Second {
		c.MaxDuration = 180 * time.Second
	}
	if c.StepDelay < time.Second {
		c.StepDelay = time.Second
	}
	if c.StepDelay > 2*time.Second {
		c.StepDelay = 2 * time.Second
	}
	if c.MaxToolIterations <= 0 {
		c.MaxToolIterations = 5
	}
	if c.MaxElements <= 0 {
		c.MaxElements = screen.DefaultMaxElements
	}
	if c.MaxTextLength <= 0 {
		c.MaxTextLength = screen.DefaultMaxTextLength
	}
	return c
}
