package action

import (
	"context"
	"testing"

	"github.com/haasonsaas/acc/internal/decision"
	"github.com/haasonsaas/acc/internal/screen"
)

func TestSimulatorExecuteRecordsAndValidatesIndex(t *testing.T) {
	scr := screen.NewSimulator(screen.NewScreen("", []screen.ScreenElement{
		{Index: 0, Label: "Search"},
	}))
	// advance the screen simulator once so Current() has something to resolve against
	_, _ = scr.Capture(context.Background(), screen.DefaultMaxElements, screen.DefaultMaxTextLength)

	sink := NewSimulator(scr, nil)
	idx := 0
	res, err := sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionTap, Index: &idx})
	if err != nil || !res.Success {
		t.Fatalf("expected success tapping valid index, got %+v err %v", res, err)
	}
	if len(sink.Executed) != 1 {
		t.Errorf("expected decision to be recorded, got %d entries", len(sink.Executed))
	}
}

func TestSimulatorExecuteRejectsUnknownIndex(t *testing.T) {
	scr := screen.NewSimulator(screen.NewScreen("", []screen.ScreenElement{{Index: 0, Label: "Search"}}))
	_, _ = scr.Capture(context.Background(), screen.DefaultMaxElements, screen.DefaultMaxTextLength)
	sink := NewSimulator(scr, nil)

	idx := 99
	res, err := sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionTap, Index: &idx})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Errorf("expected failure for unresolvable index, got %+v", res)
	}
}

func TestSimulatorExecuteMissingIndex(t *testing.T) {
	sink := NewSimulator(nil, nil)
	res, err := sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionType})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Errorf("expected failure when index is nil for an index-requiring action")
	}
}

func TestSimulatorExecuteBlockedElement(t *testing.T) {
	scr := screen.NewSimulator(screen.NewScreen("", []screen.ScreenElement{
		{Index: 0, Label: "Confirm Payment", ResourceID: "payment_confirm"},
	}))
	_, _ = scr.Capture(context.Background(), screen.DefaultMaxElements, screen.DefaultMaxTextLength)
	sink := NewSimulator(scr, nil)

	idx := 0
	res, _ := sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionTap, Index: &idx})
	if res.Success {
		t.Errorf("expected blocklisted element to be rejected, got %+v", res)
	}
}

func TestSimulatorExecuteOpenApp(t *testing.T) {
	sink := NewSimulator(nil, []AppEntry{{Label: "YouTube", Target: "com.google.android.youtube"}})
	res, err := sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionOpenApp, Text: "youtube"})
	if err != nil || !res.Success {
		t.Fatalf("expected open app to succeed, got %+v err %v", res, err)
	}

	res, _ = sink.Execute(context.Background(), decision.UIDecision{Action: decision.ActionOpenApp, Text: "nonexistent"})
	if res.Success {
		t.Errorf("expected open app with no match to fail, got %+v", res)
	}
}

func TestSimulatorExecuteContextCancelled(t *testing.T) {
	sink := NewSimulator(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sink.Execute(ctx, decision.UIDecision{Action: decision.ActionWait}); err == nil {
		t.Errorf("expected cancellation error")
	}
}
