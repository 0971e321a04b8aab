package decider

import (
	"fmt"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// PromptVariant selects which framing the Orchestrator wants for the
// current step, per §4.6's per-step procedure.
type PromptVariant int

const (
	// VariantNormal is the default step prompt: goal, screen, history.
	VariantNormal PromptVariant = iota
	// VariantLoopRecovery fires when the LoopDetector flags repetition:
	// the model is told explicitly that its last actions looped and
	// asked to try something different.
	VariantLoopRecovery
	// VariantFailureRecovery fires after a recent action failed: the
	// model is told the failure message and asked to adapt.
	VariantFailureRecovery
)

// PromptInput is everything a prompt builder needs to render one step's
// user-turn text.
type PromptInput struct {
	Goal            string
	ScreenText      string
	HistoryText     string
	LastFailure     string
	Variant         PromptVariant
	ToolResultsText string // non-empty inside a ToolLoop re-prompt iteration
}

const systemPrompt = `You are a UI automation agent. You are given a goal, the
current screen's interactive elements, and a history of actions already
taken. Respond with exactly one decision: either a single UI action as a
JSON object, a set of tool calls, or a text answer if the goal requires no
further UI interaction.

UI action JSON shape: {"action": "<tap|type|enter|swipe|long|back|home|open|url|search|notif|quick|screenshot|wait|done>", "index": <int, if targeting an element>, "text": "<string, if typing/searching/opening an app>", "direction": "<up|down|left|right, if swiping>", "url": "<string, if opening a url>"}

Only ever act on element indices present in the current screen. Never
invent an index. If the goal is already satisfied, respond with the
"done" action.`

// BuildSystemPrompt returns the fixed system prompt shared by every
// step and variant.
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the user-turn text for in.Variant.
func BuildUserPrompt(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s\n\n", in.Goal)

	switch in.Variant {
	case VariantLoopRecovery:
		b.WriteString("NOTICE: your recent actions are repeating without making progress. Do not repeat the same action. Try a different element, a different action type, or consider the goal already failed and respond with \"done\".\n\n")
	case VariantFailureRecovery:
		fmt.Fprintf(&b, "NOTICE: your last action failed: %s. Choose a different approach.\n\n", in.LastFailure)
	}

	b.WriteString("Current screen elements:\n")
	if in.ScreenText == "" {
		b.WriteString("(no elements)\n")
	} else {
		b.WriteString(in.ScreenText)
	}
	b.WriteString("\n")

	b.WriteString("Action history:\n")
	if in.HistoryText == "" {
		b.WriteString("(none yet)\n")
	} else {
		b.WriteString(in.HistoryText)
	}

	if in.ToolResultsText != "" {
		b.WriteString("\nTool results from this step:\n")
		b.WriteString(in.ToolResultsText)
	}

	return b.String()
}

// BuildToolCatalogSuffix appends a textual tool catalog to a prompt for
// backends that don't support native function calling (the Local
// backend's no-tools-native fallback mode, §4.3).
func BuildToolCatalogSuffix(tools []decision.ToolDefinition) string {
	if len(tools) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nAvailable tools (respond with <tool_call>{\"name\":...,\"input\":{...}}</tool_call> to invoke one):\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return b.String()
}
