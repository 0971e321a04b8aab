package tools

import (
	"context"
	"sync"

	"github.com/haasonsaas/acc/internal/decision"
)

// DefaultMaxConcurrency bounds simultaneous tool executions, mirroring
// the teacher's executor.ExecutorConfig.MaxConcurrency default.
const DefaultMaxConcurrency = 5

// ExecuteAll runs every call in calls concurrently against reg, bounded
// by maxConcurrency, and returns results in the same order as calls.
// Grounded on internal/agent/executor.go's ExecuteAll: goroutine fan-out
// behind a semaphore plus a WaitGroup, generalized from the teacher's
// arbitrary chat tools to the UI-tool-aware registry here.
func ExecuteAll(ctx context.Context, reg *Registry, calls []decision.ToolCall, maxConcurrency int) []decision.ToolResult {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	results := make([]decision.ToolResult, len(calls))
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call decision.ToolCall) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = reg.Execute(ctx, call)
		}(i, call)
	}

	wg.Wait()
	return results
}
