package decider

import (
	"context"

	"github.com/haasonsaas/acc/internal/decision"
)

// Request is the provider-agnostic input to a Backend's Complete call:
// one fully-built prompt (the Orchestrator has already chosen the
// normal/loop-recovery/failure-recovery/vision variant), the current
// tool catalog, and an optional screenshot.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Tools        []decision.ToolDefinition
	Image        []byte // JPEG bytes, nil if this step carries no screenshot
	MaxTokens    int
	Temperature  float64
}

// Response is a Backend's raw completion, not yet parsed into a
// decision.Decision: either free text (the model answered or emitted a
// UI decision as JSON text) or structured tool calls (the model used
// native function calling).
type Response struct {
	Text      string
	ToolCalls []decision.ToolCall
}

// Backend is the single-turn completion contract every remote or local
// model transport implements. Unlike the teacher's streaming
// agent.LLMProvider (chat completion, channel of chunks), a Backend
// returns one Response per decide() call — §4.3's contract is
// request/response, not a multi-turn stream.
type Backend interface {
	Name() string
	SupportsTools() bool
	SupportsVision() bool
	Complete(ctx context.Context, req Request) (*Response, error)
}
