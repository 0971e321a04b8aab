// Package tools implements C4: the ToolRegistry and ToolLoop, plus the
// built-in non-UI and UI tool sets. Grounded on the teacher's
// internal/agent/tool_registry.go (thread-safe registry) and
// internal/agent/executor.go (semaphore-bounded parallel execution with
// retry/backoff/timeout/panic-recovery), generalized from a chat
// tool-loop to the spec's UI-tool short-circuit and bounded re-prompt
// loop (§4.4).
package tools

import (
	"context"
	"encoding/json"

	"github.com/haasonsaas/acc/internal/decision"
)

// MaxToolNameLength bounds a registered tool's name, mirroring the
// teacher's registry guard (internal/agent/tool_registry.go).
const MaxToolNameLength = 256

// MaxToolInputSize bounds a single tool call's input payload.
const MaxToolInputSize = 1 << 20

// Tool is a callable function the Decider can invoke via a ToolCall.
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}

// UITool marks a Tool whose execution is itself a UI action: the
// ToolLoop short-circuits on seeing one of these rather than re-prompting
// the Decider, handing the produced decision.UIDecision straight to the
// Orchestrator (mirrors the teacher's computeruse.Tool proxy pattern).
type UITool interface {
	Tool
	UIDecision(input json.RawMessage) (decision.UIDecision, error)
}
