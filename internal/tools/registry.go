package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/haasonsaas/acc/internal/decision"
)

// Registry is a thread-safe tool catalog, grounded directly on the
// teacher's internal/agent/tool_registry.go ToolRegistry.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t to the registry, replacing any existing tool of the
// same name. Returns an error if the name is empty or too long.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tools: empty tool name")
	}
	if len(name) > MaxToolNameLength {
		return fmt.Errorf("tools: tool name %q exceeds %d bytes", name, MaxToolNameLength)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = t
	return nil
}

// Unregister removes a tool by name. No-op if absent.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Get returns the tool registered under name, if any.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns every registered tool as a decision.ToolDefinition,
// the shape the Decider hands to a Backend's schema converter.
func (r *Registry) Definitions() []decision.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]decision.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, decision.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Schema:      t.Schema(),
		})
	}
	return defs
}

// Execute runs a single ToolCall, guarding input size and classifying a
// missing tool as an error ToolResult rather than a Go error — a tool
// lookup miss is an expected, recoverable outcome the Decider's next
// prompt should see, not a fatal condition.
func (r *Registry) Execute(ctx context.Context, call decision.ToolCall) decision.ToolResult {
	if len(call.Input) > MaxToolInputSize {
		return errorResult(call.ID, "tool input exceeds size limit")
	}

	t, ok := r.Get(call.Name)
	if !ok {
		return errorResult(call.ID, fmt.Sprintf("tool %q not found", call.Name))
	}

	content, err := runWithRecover(ctx, t, call.Input)
	if err != nil {
		return errorResult(call.ID, err.Error())
	}
	return decision.ToolResult{ToolCallID: call.ID, Content: content}
}

func runWithRecover(ctx context.Context, t Tool, input json.RawMessage) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panic: %v", r)
		}
	}()
	return t.Execute(ctx, input)
}

func errorResult(callID, msg string) decision.ToolResult {
	return decision.ToolResult{ToolCallID: callID, Content: msg, IsError: true}
}
