// Package uitools implements the UI tool vocabulary (C4's UI tool set):
// one Tool per decision.UIAction, each a thin wrapper mirroring the
// teacher's internal/tools/computeruse.Tool — a structured action
// payload handed to an external executor — except the "executor" here is
// the ToolLoop's UI-tool short-circuit rather than a remote edge device.
package uitools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/acc/internal/decision"
)

// rawUIInput is the wire shape for a ui_* tool call's input. Like
// decider.ParseResponse it falls back from text to query, but it accepts
// only the full key names, not ParseResponse's one-letter aliases.
type rawUIInput struct {
	Index     *int   `json:"index"`
	Text      string `json:"text"`
	Direction string `json:"direction"`
	URL       string `json:"url"`
	Query     string `json:"query"`
}

// Tool is a single UI action exposed to the Decider's native tool-calling
// path. Name is "ui_"+action (e.g. "ui_tap"); Execute is never actually
// reached in normal operation because the ToolLoop short-circuits on
// UIDecision before calling Execute — it exists so Tool still satisfies
// tools.Tool for registry bookkeeping and direct tests.
type Tool struct {
	action      decision.UIAction
	description string
	needsIndex  bool
}

func newTool(action decision.UIAction, description string, needsIndex bool) Tool {
	return Tool{action: action, description: description, needsIndex: needsIndex}
}

func (t Tool) Name() string        { return "ui_" + string(t.action) }
func (t Tool) Description() string { return t.description }

func (t Tool) Schema() json.RawMessage {
	props := map[string]any{}
	required := []string{}
	if t.needsIndex {
		props["index"] = map[string]any{"type": "integer"}
		required = append(required, "index")
	}
	switch t.action {
	case decision.ActionType:
		props["text"] = map[string]any{"type": "string"}
		required = append(required, "text")
	case decision.ActionSwipe:
		props["direction"] = map[string]any{"type": "string", "enum": []string{"up", "down", "left", "right"}}
		required = append(required, "direction")
	case decision.ActionOpenApp:
		props["text"] = map[string]any{"type": "string", "description": "app name"}
		required = append(required, "text")
	case decision.ActionOpenURL:
		props["url"] = map[string]any{"type": "string"}
		required = append(required, "url")
	case decision.ActionSearch:
		props["query"] = map[string]any{"type": "string"}
		required = append(required, "query")
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	out, _ := json.Marshal(schema)
	return out
}

// UIDecision converts a tool call's raw input into the decision.UIDecision
// the ToolLoop short-circuits on.
func (t Tool) UIDecision(input json.RawMessage) (decision.UIDecision, error) {
	var raw rawUIInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &raw); err != nil {
			return decision.UIDecision{}, fmt.Errorf("invalid ui tool input: %w", err)
		}
	}
	text := raw.Text
	if text == "" {
		text = raw.Query
	}
	return decision.UIDecision{
		Action:    t.action,
		Index:     raw.Index,
		Text:      text,
		Direction: raw.Direction,
		URL:       raw.URL,
	}, nil
}

// Execute satisfies tools.Tool directly (e.g. for a test driving the
// tool through the registry rather than the ToolLoop short-circuit): it
// returns the resolved decision as a descriptive string, performing no
// side effect of its own.
func (t Tool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	d, err := t.UIDecision(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ui action %s queued", d.Action), nil
}

// All returns one Tool per member of the closed UIAction vocabulary,
// ready to register with a tools.Registry.
func All() []Tool {
	return []Tool{
		newTool(decision.ActionTap, "Tap the screen element at the given index.", true),
		newTool(decision.ActionType, "Type text into the screen element at the given index.", true),
		newTool(decision.ActionEnter, "Press enter/submit on the screen element at the given index.", true),
		newTool(decision.ActionSwipe, "Swipe the screen in the given direction.", false),
		newTool(decision.ActionLongPress, "Long-press the screen element at the given index.", true),
		newTool(decision.ActionBack, "Navigate back.", false),
		newTool(decision.ActionHome, "Return to the home screen.", false),
		newTool(decision.ActionOpenApp, "Open an app by name.", false),
		newTool(decision.ActionOpenURL, "Open a URL.", false),
		newTool(decision.ActionSearch, "Perform a web search for a query.", false),
		newTool(decision.ActionNotifs, "Open the notification shade.", false),
		newTool(decision.ActionQuickSet, "Open quick settings.", false),
		newTool(decision.ActionScreenshot, "Take a screenshot of the current screen.", false),
		newTool(decision.ActionWait, "Wait briefly before the next decision.", false),
		newTool(decision.ActionDone, "Declare the goal complete.", false),
	}
}
