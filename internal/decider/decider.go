package decider

import (
	"context"
	"log/slog"

	"github.com/haasonsaas/acc/internal/decision"
)

// Mode selects which backend(s) Decide is willing to use.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
	ModeAuto   Mode = "auto" // remote first, fall back to local on retryable failure
)

// Decider is C3: it wraps a Remote and/or Local Backend and exposes the
// single `decide(prompt, tools, optional_image) → Decision` contract of
// §4.3, handling remote→local fallback and response parsing.
type Decider struct {
	Remote Backend
	Local  Backend
	Mode   Mode
	Logger *slog.Logger
}

// New builds a Decider. Either remote or local may be nil; Mode governs
// which is tried and in what order.
func New(remote, local Backend, mode Mode, logger *slog.Logger) *Decider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decider{Remote: remote, Local: local, Mode: mode, Logger: logger}
}

// Decide renders the already-built prompt through the selected backend(s)
// and parses the result into a decision.Decision. It never panics and
// never returns a nil Decision: a hard failure of every eligible backend
// comes back as a decision.Decision{Kind: KindError}, letting the
// Orchestrator's fallback-to-wait logic (§7) stay in one place.
func (d *Decider) Decide(ctx context.Context, prompt PromptInput, tools []decision.ToolDefinition, image []byte) (decision.Decision, error) {
	req := Request{
		SystemPrompt: BuildSystemPrompt(),
		UserPrompt:   BuildUserPrompt(prompt),
		Tools:        tools,
		Image:        image,
		Temperature:  0,
	}

	order := d.backendOrder()
	if len(order) == 0 {
		return decision.NewErrorDecision("no decider backend configured"), NewError("none", "no backend configured", nil)
	}

	var lastErr error
	for _, backend := range order {
		req := req
		if !backend.SupportsVision() {
			req.Image = nil
		}
		if !backend.SupportsTools() {
			req.UserPrompt += BuildToolCatalogSuffix(tools)
			req.Tools = nil
		}

		resp, err := backend.Complete(ctx, req)
		if err != nil {
			de := NewError(backend.Name(), "completion failed", err)
			lastErr = de
			d.Logger.Warn("decider backend failed", "backend", backend.Name(), "error", err, "retryable", de.Retryable())
			if de.Retryable() {
				continue
			}
			return decision.NewErrorDecision(de.Error()), de
		}

		return ParseResponse(resp), nil
	}

	return decision.NewErrorDecision("all decider backends exhausted"), lastErr
}

func (d *Decider) backendOrder() []Backend {
	switch d.Mode {
	case ModeRemote:
		return nonNil(d.Remote)
	case ModeLocal:
		return nonNil(d.Local)
	default: // ModeAuto
		return nonNil(d.Remote, d.Local)
	}
}

func nonNil(backends ...Backend) []Backend {
	out := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}
