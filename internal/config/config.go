// Package config loads ACC's run configuration: provider credentials,
// budgets, the app-launch table, and vision/logging settings. Grounded
// on the teacher's internal/config package (gopkg.in/yaml.v3, strict
// KnownFields decode, env var expansion before parse) but much smaller —
// ACC has no gateway/channel/plugin/marketplace surface to configure.
package config

import (
	"time"

	"github.com/haasonsaas/acc/internal/action"
)

// ProviderConfig holds one backend's connection settings.
type ProviderConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	Region   string `yaml:"region"` // bedrock only
}

// BudgetConfig mirrors orchestrator.Config's fields in their YAML/env
// wire shape (durations as seconds/milliseconds, not time.Duration).
type BudgetConfig struct {
	MaxSteps        int `yaml:"max_steps"`
	MaxDurationSec  int `yaml:"max_duration_sec"`
	StepDelayMillis int `yaml:"step_delay_ms"`
}

// VisionConfig holds the vision settings. Detail and MaxDim are decoded
// from the config file; no Decider backend reads them.
type VisionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Detail  string `yaml:"detail"` // "low" or "high"
	MaxDim  int    `yaml:"max_dim"`
}

// LoggingConfig mirrors the teacher's observability.LogConfig shape.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// AppEntryConfig is the YAML wire shape of an action.AppEntry.
type AppEntryConfig struct {
	Label   string   `yaml:"label"`
	Target  string   `yaml:"target"`
	Aliases []string `yaml:"aliases"`
}

// Config is the full ACC configuration, decoded from YAML and/or
// overridden by environment variables (§6).
type Config struct {
	Remote   ProviderConfig `yaml:"remote"`
	Local    ProviderConfig `yaml:"local"`
	Backend  string         `yaml:"backend"` // "anthropic" | "openai" | "bedrock" (used when acting as remote)
	Mode     string         `yaml:"mode"`    // "remote" | "local" | "auto"
	Budgets  BudgetConfig   `yaml:"budgets"`
	Vision   VisionConfig   `yaml:"vision"`
	Logging  LoggingConfig  `yaml:"logging"`
	Apps     []AppEntryConfig `yaml:"apps"`
}

// Default returns a Config with the spec's default budgets and an empty
// app table.
func Default() Config {
	return Config{
		Backend: "anthropic",
		Mode:    "auto",
		Budgets: BudgetConfig{MaxSteps: 15, MaxDurationSec: 90, StepDelayMillis: 1500},
		Vision:  VisionConfig{Enabled: false, Detail: "low", MaxDim: 768},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// MaxDuration returns Budgets.MaxDurationSec as a time.Duration.
func (c Config) MaxDuration() time.Duration {
	return time.Duration(c.Budgets.MaxDurationSec) * time.Second
}

// StepDelay returns Budgets.StepDelayMillis as a time.Duration.
func (c Config) StepDelay() time.Duration {
	return time.Duration(c.Budgets.StepDelayMillis) * time.Millisecond
}

// AppTable converts Apps into action.AppEntry values.
func (c Config) AppTable() []action.AppEntry {
	table := make([]action.AppEntry, 0, len(c.Apps))
	for _, a := range c.Apps {
		table = append(table, action.AppEntry{Label: a.Label, Target: a.Target, Aliases: a.Aliases})
	}
	return table
}
