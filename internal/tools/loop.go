package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

// MaxToolIterations bounds the tool sub-loop's re-prompt cycles (§4.4).
const MaxToolIterations = 5

// Loop drives the bounded tool-call/re-prompt sub-loop: execute the
// pending tool calls, short-circuit immediately if any is a UITool, and
// otherwise hand the results back to the Decider for up to
// MaxToolIterations before giving up.
type Loop struct {
	Registry       *Registry
	Decider        *decider.Decider
	MaxIterations  int
	MaxConcurrency int
}

// NewLoop builds a Loop with the spec's default bounds.
func NewLoop(reg *Registry, d *decider.Decider) *Loop {
	return &Loop{Registry: reg, Decider: d, MaxIterations: MaxToolIterations, MaxConcurrency: DefaultMaxConcurrency}
}

// Run processes an initial decision.Decision of KindToolCalls to
// completion: it returns either a KindUI decision (a UI tool fired, or
// the Decider eventually emitted one), a KindTextAnswer (the Decider
// answered without further tool use), or a KindError if the loop
// exhausted MaxIterations without resolving.
func (l *Loop) Run(ctx context.Context, prompt decider.PromptInput, toolDefs []decision.ToolDefinition, image []byte, initial decision.Decision) (decision.Decision, error) {
	current := initial
	maxIter := l.MaxIterations
	if maxIter <= 0 {
		maxIter = MaxToolIterations
	}

	for iteration := 0; iteration < maxIter; iteration++ {
		if current.Kind != decision.KindToolCalls {
			return current, nil
		}

		if ui, call, ok := l.findUIToolCall(current.ToolCalls); ok {
			d, err := ui.UIDecision(call.Input)
			if err != nil {
				return decision.NewErrorDecision(fmt.Sprintf("ui tool %q: %v", call.Name, err)), nil
			}
			return decision.NewUIDecision(d), nil
		}

		results := ExecuteAll(ctx, l.Registry, current.ToolCalls, l.MaxConcurrency)
		prompt.ToolResultsText = renderToolResults(results)

		next, err := l.Decider.Decide(ctx, prompt, toolDefs, image)
		if err != nil {
			return current, err
		}
		current = next
	}

	if current.Kind != decision.KindToolCalls {
		return current, nil
	}
	return decision.NewErrorDecision("tool sub-loop exceeded max iterations"), nil
}

func (l *Loop) findUIToolCall(calls []decision.ToolCall) (UITool, decision.ToolCall, bool) {
	for _, call := range calls {
		if !strings.HasPrefix(call.Name, "ui_") {
			continue
		}
		t, ok := l.Registry.Get(call.Name)
		if !ok {
			continue
		}
		if ui, ok := t.(UITool); ok {
			return ui, call, true
		}
	}
	return nil, decision.ToolCall{}, false
}

func renderToolResults(results []decision.ToolResult) string {
	var b strings.Builder
	for _, r := range results {
		status := "ok"
		if r.IsError {
			status = "error"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", r.ToolCallID, status, r.Content)
	}
	return b.String()
}
