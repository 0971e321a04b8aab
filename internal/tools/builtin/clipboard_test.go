package builtin

import (
	"context"
	"testing"
)

// clipboard.ReadAll may fail in a headless CI environment (no clipboard
// daemon available) — ClipboardTool treats that as a recoverable
// "unavailable" result rather than an error, so this only asserts the
// tool never returns a Go error, not a specific clipboard value.
func TestClipboardToolNeverErrors(t *testing.T) {
	tool := ClipboardTool{}
	out, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("ClipboardTool.Execute should never return an error, got %v", err)
	}
	if out == "" {
		t.Errorf("expected a non-empty result string, got empty")
	}
}
