package decider

import (
	"strings"
	"testing"

	"github.com/haasonsaas/acc/internal/decision"
)

func TestBuildUserPromptVariants(t *testing.T) {
	normal := BuildUserPrompt(PromptInput{Goal: "open settings", ScreenText: "[0] Settings"})
	if !strings.Contains(normal, "open settings") || !strings.Contains(normal, "[0] Settings") {
		t.Errorf("normal prompt missing goal/screen text: %q", normal)
	}
	if strings.Contains(normal, "NOTICE") {
		t.Errorf("normal variant should not include a notice: %q", normal)
	}

	loop := BuildUserPrompt(PromptInput{Goal: "g", Variant: VariantLoopRecovery})
	if !strings.Contains(loop, "repeating") {
		t.Errorf("loop recovery variant should mention repetition: %q", loop)
	}

	failure := BuildUserPrompt(PromptInput{Goal: "g", Variant: VariantFailureRecovery, LastFailure: "no element at index 3"})
	if !strings.Contains(failure, "no element at index 3") {
		t.Errorf("failure recovery variant should include the failure message: %q", failure)
	}
}

func TestBuildUserPromptEmptyScreenAndHistory(t *testing.T) {
	out := BuildUserPrompt(PromptInput{Goal: "g"})
	if !strings.Contains(out, "(no elements)") || !strings.Contains(out, "(none yet)") {
		t.Errorf("expected placeholders for empty screen/history, got %q", out)
	}
}

func TestBuildToolCatalogSuffixEmpty(t *testing.T) {
	if got := BuildToolCatalogSuffix(nil); got != "" {
		t.Errorf("expected empty suffix for no tools, got %q", got)
	}
}

func TestBuildToolCatalogSuffixListsTools(t *testing.T) {
	tools := []decision.ToolDefinition{{Name: "get_weather", Description: "reports local weather"}}
	out := BuildToolCatalogSuffix(tools)
	if !strings.Contains(out, "get_weather") || !strings.Contains(out, "reports local weather") {
		t.Errorf("expected tool catalog entry in suffix, got %q", out)
	}
}
