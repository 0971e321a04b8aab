// Package screen defines the ScreenSource port (C1) and an in-memory
// Simulator implementation used by tests and the CLI's default run mode.
package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// ScreenElement is one interactive node of a snapshot: enough shape
// information for a Decider to reason about it and for an ActionSink to
// resolve an index back to screen coordinates.
type ScreenElement struct {
	Index           int             `json:"index"`
	Label           string          `json:"label"`
	ResourceID      string          `json:"resource_id,omitempty"`
	ClassHint       string          `json:"class_hint,omitempty"`
	CenterX         int             `json:"center_x"`
	CenterY         int             `json:"center_y"`
	Clickable       bool            `json:"clickable"`
	EditText        bool            `json:"edit_text"`
	Scrollable      bool            `json:"scrollable"`
	SuggestedAction decision.UIAction `json:"suggested_action,omitempty"`
}

// Screen is a single snapshot: the elements present, an index lookup for
// coordinate resolution, and a compact textual rendering for prompts.
type Screen struct {
	Elements    []ScreenElement
	byIndex     map[int]ScreenElement
	CompactText string
	AppPackage  string
	ActivityHint string
}

// NewScreen builds a Screen from a flat element list, deriving the index
// lookup map and a compact textual form for prompt inclusion.
func NewScreen(appPackage string, elements []ScreenElement) Screen {
	byIndex := make(map[int]ScreenElement, len(elements))
	for _, el := range elements {
		byIndex[el.Index] = el
	}
	return Screen{
		Elements:    elements,
		byIndex:     byIndex,
		CompactText: renderCompact(elements),
		AppPackage:  appPackage,
	}
}

// Lookup resolves an element index to its full ScreenElement.
func (s Screen) Lookup(index int) (ScreenElement, bool) {
	el, ok := s.byIndex[index]
	return el, ok
}

func renderCompact(elements []ScreenElement) string {
	var b strings.Builder
	for _, el := range elements {
		label := el.Label
		if label == "" {
			label = el.ResourceID
		}
		fmt.Fprintf(&b, "[%d] %s", el.Index, label)
		if el.ClassHint != "" {
			fmt.Fprintf(&b, " (%s)", el.ClassHint)
		}
		if el.EditText {
			b.WriteString(" [editable]")
		}
		if el.Scrollable {
			b.WriteString(" [scrollable]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DefaultMaxElements and DefaultMaxTextLength are §3's bounds: callers
// that don't need a different cap should pass these rather than 0, which
// means "return no elements"/"blank every label" literally (§8).
const (
	DefaultMaxElements   = 30
	DefaultMaxTextLength = 50
)

// Source is the ScreenSource port (C1): capture the current screen state.
// An implementation must never retain a reference back to its caller —
// the port is a pure data source.
type Source interface {
	// Capture returns the current screen snapshot, admitting at most
	// maxElements elements (stopping traversal once reached) with every
	// label truncated to maxTextLength runes (§4.1). A maxElements of 0
	// yields an empty Screen; implementations must not silently
	// substitute a default. Implementations that front a live device or
	// page should treat ctx cancellation as a suspension point (§5).
	Capture(ctx context.Context, maxElements, maxTextLength int) (Screen, error)
}

// Bound truncates elements to at most maxElements entries and clamps
// every element's Label to maxTextLength runes, then rebuilds the
// Screen the way NewScreen does. Shared by every Source implementation
// so the cap/truncation rule in §4.1/§8 is enforced identically
// everywhere instead of per-backend.
func Bound(appPackage string, elements []ScreenElement, maxElements, maxTextLength int) Screen {
	if maxElements < 0 {
		maxElements = 0
	}
	if maxElements < len(elements) {
		elements = elements[:maxElements]
	}

	bounded := make([]ScreenElement, len(elements))
	for i, el := range elements {
		el.Label = truncateRunes(el.Label, maxTextLength)
		bounded[i] = el
	}
	return NewScreen(appPackage, bounded)
}

func truncateRunes(s string, max int) string {
	if max < 0 {
		max = 0
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
