package decider

import (
	"encoding/json"
	"testing"

	"github.com/haasonsaas/acc/internal/decision"
)

func TestParseResponseNativeToolCallsTakePriority(t *testing.T) {
	resp := &Response{
		Text:      `{"action":"tap","index":1}`,
		ToolCalls: []decision.ToolCall{{ID: "1", Name: "get_weather"}},
	}
	d := ParseResponse(resp)
	if d.Kind != decision.KindToolCalls {
		t.Fatalf("expected native tool calls to win over embedded JSON text, got %+v", d)
	}
}

func TestParseResponseToolCallTag(t *testing.T) {
	resp := &Response{Text: `I'll check that. <tool_call>{"name":"get_weather","input":{"city":"nyc"}}</tool_call>`}
	d := ParseResponse(resp)
	if d.Kind != decision.KindToolCalls || len(d.ToolCalls) != 1 {
		t.Fatalf("expected one parsed tool call, got %+v", d)
	}
	if d.ToolCalls[0].Name != "get_weather" {
		t.Errorf("got tool name %q, want get_weather", d.ToolCalls[0].Name)
	}
}

func TestParseResponseBalancedJSONWithPreamble(t *testing.T) {
	resp := &Response{Text: "Here's my decision:\n```json\n{\"a\":\"tap\",\"i\":3}\n```\nDone."}
	d := ParseResponse(resp)
	if d.Kind != decision.KindUI {
		t.Fatalf("expected a UI decision, got %+v", d)
	}
	if d.UI.Action != decision.ActionTap || d.UI.Index == nil || *d.UI.Index != 3 {
		t.Errorf("got UI decision %+v, want tap at index 3", d.UI)
	}
}

func TestParseResponseAliasedKeys(t *testing.T) {
	resp := &Response{Text: `{"a":"click","t":"hello","i":2}`}
	d := ParseResponse(resp)
	if d.Kind != decision.KindUI {
		t.Fatalf("expected UI decision from aliased keys, got %+v", d)
	}
	if d.UI.Action != decision.ActionTap || d.UI.Text != "hello" {
		t.Errorf("got %+v", d.UI)
	}
}

func TestParseResponseInfersActionWhenMissing(t *testing.T) {
	resp := &Response{Text: `{"url":"https://example.com"}`}
	d := ParseResponse(resp)
	if d.Kind != decision.KindUI || d.UI.Action != decision.ActionOpenURL {
		t.Fatalf("expected inferred open_url action, got %+v", d)
	}
}

func TestParseResponseFallsBackToTextAnswer(t *testing.T) {
	resp := &Response{Text: "The weather today is sunny and 72 degrees."}
	d := ParseResponse(resp)
	if d.Kind != decision.KindTextAnswer || d.Text == "" {
		t.Fatalf("expected plain text fallback, got %+v", d)
	}
}

func TestParseResponseEmptyIsError(t *testing.T) {
	d := ParseResponse(&Response{Text: "   "})
	if d.Kind != decision.KindError {
		t.Fatalf("expected error decision for blank text, got %+v", d)
	}

	d = ParseResponse(nil)
	if d.Kind != decision.KindError {
		t.Fatalf("expected error decision for nil response, got %+v", d)
	}
}

func TestExtractBalancedJSONHandlesNestedBracesAndStrings(t *testing.T) {
	s := `prose { "a": "tap", "nested": {"x": 1}, "s": "a } inside a string" } trailing`
	obj, ok := extractBalancedJSON(s)
	if !ok {
		t.Fatalf("expected to extract a balanced object")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		t.Fatalf("extracted text is not valid JSON: %v, got %q", err, obj)
	}
}

func TestExtractBalancedJSONNoObject(t *testing.T) {
	if _, ok := extractBalancedJSON("no braces here"); ok {
		t.Errorf("expected no match when there is no opening brace")
	}
}
