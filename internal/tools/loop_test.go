package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

type uiTapTool struct{}

func (uiTapTool) Name() string            { return "ui_tap" }
func (uiTapTool) Description() string     { return "taps an element" }
func (uiTapTool) Schema() json.RawMessage { return json.RawMessage(`{"type":"object"}`) }
func (uiTapTool) Execute(context.Context, json.RawMessage) (string, error) {
	return "", nil
}
func (uiTapTool) UIDecision(input json.RawMessage) (decision.UIDecision, error) {
	var in struct {
		Index int `json:"index"`
	}
	_ = json.Unmarshal(input, &in)
	return decision.UIDecision{Action: decision.ActionTap, Index: &in.Index}, nil
}

type sequencedBackend struct {
	responses []*decider.Response
	calls     int
}

func (b *sequencedBackend) Name() string         { return "seq" }
func (b *sequencedBackend) SupportsTools() bool  { return true }
func (b *sequencedBackend) SupportsVision() bool { return false }
func (b *sequencedBackend) Complete(ctx context.Context, req decider.Request) (*decider.Response, error) {
	resp := b.responses[b.calls]
	if b.calls < len(b.responses)-1 {
		b.calls++
	}
	return resp, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLoopShortCircuitsOnUITool(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(uiTapTool{})

	d := decider.New(&sequencedBackend{responses: []*decider.Response{{Text: "unused"}}}, nil, decider.ModeRemote, discardLogger())
	loop := NewLoop(reg, d)

	initial := decision.NewToolCallsDecision([]decision.ToolCall{
		{ID: "1", Name: "ui_tap", Input: json.RawMessage(`{"index":2}`)},
	})

	out, err := loop.Run(context.Background(), decider.PromptInput{Goal: "tap it"}, nil, nil, initial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != decision.KindUI || out.UI.Action != decision.ActionTap || out.UI.Index == nil || *out.UI.Index != 2 {
		t.Fatalf("expected UI tap decision from short-circuit, got %+v", out)
	}
}

func TestLoopRePromptsAfterNonUITool(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(echoTool{name: "get_weather"})

	backend := &sequencedBackend{responses: []*decider.Response{
		{Text: `{"action":"done"}`},
	}}
	d := decider.New(backend, nil, decider.ModeRemote, discardLogger())
	loop := NewLoop(reg, d)

	initial := decision.NewToolCallsDecision([]decision.ToolCall{
		{ID: "1", Name: "get_weather", Input: json.RawMessage(`"nyc"`)},
	})

	out, err := loop.Run(context.Background(), decider.PromptInput{Goal: "check weather"}, nil, nil, initial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != decision.KindUI || out.UI.Action != decision.ActionDone {
		t.Fatalf("expected the re-prompted decider's done decision, got %+v", out)
	}
}

func TestLoopExhaustsMaxIterations(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(echoTool{name: "get_weather"})

	call := decision.ToolCall{ID: "1", Name: "get_weather", Input: json.RawMessage(`"nyc"`)}
	// every Decide call returns more tool calls, so the loop never resolves
	backend := &sequencedBackend{responses: []*decider.Response{{ToolCalls: []decision.ToolCall{call}}}}
	d := decider.New(backend, nil, decider.ModeRemote, discardLogger())
	loop := &Loop{Registry: reg, Decider: d, MaxIterations: 2, MaxConcurrency: DefaultMaxConcurrency}

	initial := decision.NewToolCallsDecision([]decision.ToolCall{call})
	out, err := loop.Run(context.Background(), decider.PromptInput{}, nil, nil, initial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != decision.KindError {
		t.Fatalf("expected error decision after exhausting max iterations, got %+v", out)
	}
}

func TestLoopReturnsImmediatelyWhenInitialIsNotToolCalls(t *testing.T) {
	reg := NewRegistry()
	d := decider.New(&sequencedBackend{responses: []*decider.Response{{Text: "unused"}}}, nil, decider.ModeRemote, discardLogger())
	loop := NewLoop(reg, d)

	initial := decision.NewTextAnswerDecision("already answered")
	out, err := loop.Run(context.Background(), decider.PromptInput{}, nil, nil, initial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != decision.KindTextAnswer {
		t.Fatalf("expected the non-tool-call initial decision to pass through unchanged, got %+v", out)
	}
}
