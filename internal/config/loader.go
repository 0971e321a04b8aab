package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file at path, expanding ${VAR} references
// against the environment before parsing (matching the teacher's
// loader.go idiom), then layers the AGENT_* environment variable
// overrides from §6 on top. path may be empty, in which case Default()
// plus env overrides is returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		expanded := os.ExpandEnv(string(data))

		decoder := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides layers the environment variables named in §6 on top
// of whatever the YAML file (or the defaults) supplied.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENT_REMOTE_API_KEY"); v != "" {
		cfg.Remote.APIKey = v
	}
	if v := os.Getenv("AGENT_REMOTE_ENDPOINT"); v != "" {
		cfg.Remote.Endpoint = v
	}
	if v := os.Getenv("AGENT_MODEL_ID"); v != "" {
		cfg.Remote.Model = v
	}
	if v := os.Getenv("AGENT_MAX_STEPS"); v != "" {
		if n, err := parseIntEnv(v); err == nil {
			cfg.Budgets.MaxSteps = n
		}
	}
	if v := os.Getenv("AGENT_MAX_DURATION_MS"); v != "" {
		if n, err := parseIntEnv(v); err == nil {
			cfg.Budgets.MaxDurationSec = n / 1000
		}
	}
	if v := os.Getenv("AGENT_STEP_DELAY_MS"); v != "" {
		if n, err := parseIntEnv(v); err == nil {
			cfg.Budgets.StepDelayMillis = n
		}
	}
}

func parseIntEnv(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
