package decider

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// rawDecision is the tolerant wire shape an LLM emits for a UI decision:
// every field optional, keys aliased to single letters because smaller
// models are more reliable at emitting short keys under JSON mode.
type rawDecision struct {
	Action    string `json:"action"`
	A         string `json:"a"`
	Index     *int   `json:"index"`
	I         *int   `json:"i"`
	Text      string `json:"text"`
	T         string `json:"t"`
	Direction string `json:"direction"`
	D         string `json:"d"`
	URL       string `json:"url"`
	U         string `json:"u"`
	Query     string `json:"q"`
	App       string `json:"app"`
	Reasoning string `json:"reasoning"`
}

func (r rawDecision) resolve() decision.UIDecision {
	action := r.Action
	if action == "" {
		action = r.A
	}
	idx := r.Index
	if idx == nil {
		idx = r.I
	}
	text := r.Text
	if text == "" {
		text = r.T
	}
	if text == "" {
		text = r.Query
	}
	dir := r.Direction
	if dir == "" {
		dir = r.D
	}
	url := r.URL
	if url == "" {
		url = r.U
	}

	normalized, ok := decision.NormalizeAction(action)
	if !ok {
		normalized = inferAction(idx, text, dir, url, r.App)
	}

	return decision.UIDecision{
		Action:    normalized,
		Index:     idx,
		Text:      text,
		Direction: dir,
		URL:       url,
		App:       r.App,
		Reasoning: r.Reasoning,
	}
}

// inferAction falls back to guessing the action from which fields were
// populated, for models that emit a decision with no "action" key at all.
// Presence of app takes priority over index/text since a model naming an
// app to open has no reason to also populate an element index (§4.3).
func inferAction(idx *int, text, dir, url, app string) decision.UIAction {
	switch {
	case app != "":
		return decision.ActionOpenApp
	case url != "":
		return decision.ActionOpenURL
	case dir != "":
		return decision.ActionSwipe
	case text != "" && idx != nil:
		return decision.ActionType
	case idx != nil:
		return decision.ActionTap
	default:
		return decision.ActionWait
	}
}

var toolCallTagRe = regexp.MustCompile(`(?s)<tool_call>\s*(\{.*?\})\s*</tool_call>`)

// ParseResponse turns a Backend's raw Response into a decision.Decision.
// Native tool calls (resp.ToolCalls populated) take priority. Otherwise
// the text is scanned for <tool_call> tags (the Local backend's
// tools-without-native-function-calling fallback), then for a balanced
// JSON object describing a UI decision, and finally falls back to a
// plain text answer if neither parses.
func ParseResponse(resp *Response) decision.Decision {
	if resp == nil {
		return decision.NewErrorDecision("empty decider response")
	}

	if len(resp.ToolCalls) > 0 {
		return decision.NewToolCallsDecision(resp.ToolCalls)
	}

	if matches := toolCallTagRe.FindAllStringSubmatch(resp.Text, -1); len(matches) > 0 {
		calls := make([]decision.ToolCall, 0, len(matches))
		for i, m := range matches {
			var tc struct {
				Name  string          `json:"name"`
				Input json.RawMessage `json:"input"`
			}
			if err := json.Unmarshal([]byte(m[1]), &tc); err != nil {
				continue
			}
			calls = append(calls, decision.ToolCall{
				ID:    synthesizeID(i),
				Name:  tc.Name,
				Input: tc.Input,
			})
		}
		if len(calls) > 0 {
			return decision.NewToolCallsDecision(calls)
		}
	}

	if obj, ok := extractBalancedJSON(resp.Text); ok {
		var raw rawDecision
		if err := json.Unmarshal([]byte(obj), &raw); err == nil {
			ui := raw.resolve()
			if ui.Action.IsValid() {
				return decision.NewUIDecision(ui)
			}
		}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return decision.NewErrorDecision("decider returned no usable content")
	}
	return decision.NewTextAnswerDecision(text)
}

func synthesizeID(i int) string {
	return "local-tool-call-" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// extractBalancedJSON scans s for the first brace-balanced {...} object,
// tolerating surrounding prose (markdown fences, "Here's my decision:"
// preambles, trailing commentary) that a raw LLM completion often adds
// around the JSON payload it was asked for.
func extractBalancedJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
