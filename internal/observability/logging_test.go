package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLogLevelFromString(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"info":    "INFO",
		"":        "INFO",
		"bogus":   "INFO",
	}
	for in, want := range cases {
		if got := LogLevelFromString(in).String(); got != want {
			t.Errorf("LogLevelFromString(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoggerRedactsAPIKeyFromMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf, Format: "text"})
	logger.Info(context.Background(), "request failed", "api_key", "sk-ant-"+strings.Repeat("a", 100))

	out := buf.String()
	if strings.Contains(out, "sk-ant-aaaa") {
		t.Errorf("expected API key to be redacted, got log line: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("expected a [REDACTED] marker in output, got: %s", out)
	}
}

func TestLoggerRedactsSensitiveMapKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf, Format: "text"})
	logger.Info(context.Background(), "config loaded", "config", map[string]any{
		"password": "hunter2",
		"host":     "example.com",
	})

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("expected password field to be redacted, got: %s", out)
	}
	if !strings.Contains(out, "example.com") {
		t.Errorf("expected non-sensitive fields to pass through, got: %s", out)
	}
}

func TestLoggerWithContextAddsRunIDAndStep(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf, Format: "text"})
	ctx := AddStep(AddRunID(context.Background(), "run-123"), 4)
	logger.WithContext(ctx).Info(ctx, "step complete")

	out := buf.String()
	if !strings.Contains(out, "run-123") {
		t.Errorf("expected run_id in log output, got: %s", out)
	}
	if !strings.Contains(out, "step=4") && !strings.Contains(out, "step=\"4\"") {
		t.Errorf("expected step=4 in log output, got: %s", out)
	}
}

func TestGetRunIDReturnsEmptyWhenAbsent(t *testing.T) {
	if id := GetRunID(context.Background()); id != "" {
		t.Errorf("expected empty run id, got %q", id)
	}
}

func TestNewLoggerDefaultsFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf})
	logger.Info(context.Background(), "hello")
	if buf.Len() == 0 {
		t.Errorf("expected default json format to still produce output")
	}
}
