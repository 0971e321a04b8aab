package screen

import (
	"context"
	"strings"
	"testing"
)

func TestNewScreenLookup(t *testing.T) {
	elements := []ScreenElement{
		{Index: 0, Label: "Search", Clickable: true},
		{Index: 2, Label: "Username", EditText: true},
	}
	scr := NewScreen("com.example.app", elements)

	el, ok := scr.Lookup(2)
	if !ok {
		t.Fatalf("expected index 2 to resolve")
	}
	if el.Label != "Username" {
		t.Errorf("got label %q, want Username", el.Label)
	}

	if _, ok := scr.Lookup(1); ok {
		t.Errorf("index 1 was never in the element list, should not resolve")
	}
}

func TestRenderCompactIncludesHints(t *testing.T) {
	elements := []ScreenElement{
		{Index: 0, Label: "", ResourceID: "btn_submit", ClassHint: "Button"},
		{Index: 1, Label: "Bio", EditText: true},
		{Index: 2, Label: "Feed", Scrollable: true},
	}
	scr := NewScreen("", elements)

	if !strings.Contains(scr.CompactText, "btn_submit") {
		t.Errorf("expected fallback to ResourceID when Label is empty, got %q", scr.CompactText)
	}
	if !strings.Contains(scr.CompactText, "[editable]") {
		t.Errorf("expected editable marker, got %q", scr.CompactText)
	}
	if !strings.Contains(scr.CompactText, "[scrollable]") {
		t.Errorf("expected scrollable marker, got %q", scr.CompactText)
	}
}

func TestSimulatorRepeatsFinalScreen(t *testing.T) {
	first := NewScreen("app1", []ScreenElement{{Index: 0, Label: "Home"}})
	second := NewScreen("app2", []ScreenElement{{Index: 0, Label: "Detail"}})
	sim := NewSimulator(first, second)

	ctx := context.Background()
	got1, err := sim.Capture(ctx, DefaultMaxElements, DefaultMaxTextLength)
	if err != nil || got1.AppPackage != "app1" {
		t.Fatalf("first capture = %+v, err %v", got1, err)
	}
	got2, _ := sim.Capture(ctx, DefaultMaxElements, DefaultMaxTextLength)
	if got2.AppPackage != "app2" {
		t.Fatalf("second capture = %+v, want app2", got2)
	}
	got3, _ := sim.Capture(ctx, DefaultMaxElements, DefaultMaxTextLength)
	if got3.AppPackage != "app2" {
		t.Errorf("overshoot should repeat final screen, got %+v", got3)
	}
}

func TestSimulatorCancelledContext(t *testing.T) {
	sim := NewSimulator(NewScreen("", nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Capture(ctx, DefaultMaxElements, DefaultMaxTextLength); err == nil {
		t.Errorf("expected context cancellation error")
	}
}

func TestSimulatorEmptyScript(t *testing.T) {
	sim := NewSimulator()
	scr, err := sim.Capture(context.Background(), DefaultMaxElements, DefaultMaxTextLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scr.Elements) != 0 {
		t.Errorf("expected empty screen, got %+v", scr)
	}
}

func TestSimulatorCaptureBoundsElementsAndTruncatesLabels(t *testing.T) {
	sim := NewSimulator(NewScreen("app1", []ScreenElement{
		{Index: 0, Label: "Search this app for content"},
		{Index: 1, Label: "Home"},
		{Index: 2, Label: "Profile"},
	}))

	scr, err := sim.Capture(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scr.Elements) != 2 {
		t.Fatalf("expected 2 elements after bounding, got %d", len(scr.Elements))
	}
	if scr.Elements[0].Label != "Sear" {
		t.Errorf("expected label truncated to 4 runes, got %q", scr.Elements[0].Label)
	}
}

func TestSimulatorCaptureZeroMaxElementsYieldsEmpty(t *testing.T) {
	sim := NewSimulator(NewScreen("app1", []ScreenElement{{Index: 0, Label: "Home"}}))

	scr, err := sim.Capture(context.Background(), 0, DefaultMaxTextLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scr.Elements) != 0 {
		t.Errorf("max_elements=0 should yield no elements, got %+v", scr.Elements)
	}
}
