// Package history implements C5: the append-only action History and the
// LoopDetector predicates the Orchestrator consults before building each
// step's prompt.
package history

import (
	"fmt"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// PromptWindow bounds how many recent records format_for_prompt renders,
// keeping the prompt bounded regardless of run length.
const PromptWindow = 8

// Recorder is an optional persistence sink a host can supply to observe
// a run's history outside ACC's own process, without ACC depending on
// any storage layer itself (§4.5, "no persistent storage" carried as a
// non-goal; this is strictly an extension point).
type Recorder interface {
	Record(decision.ActionRecord)
}

// NullRecorder is the default Recorder: it no-ops.
type NullRecorder struct{}

func (NullRecorder) Record(decision.ActionRecord) {}

// History is the append-only record of every action taken this run.
type History struct {
	records  []decision.ActionRecord
	recorder Recorder
}

// New builds an empty History. If recorder is nil, NullRecorder is used.
func New(recorder Recorder) *History {
	if recorder == nil {
		recorder = NullRecorder{}
	}
	return &History{recorder: recorder}
}

// Append adds a record to the history and notifies the Recorder.
func (h *History) Append(r decision.ActionRecord) {
	h.records = append(h.records, r)
	h.recorder.Record(r)
}

// Records returns the full history in order.
func (h *History) Records() []decision.ActionRecord {
	return h.records
}

// Len returns the number of recorded actions.
func (h *History) Len() int {
	return len(h.records)
}

// Last returns the most recent n records, oldest first. n <= 0 returns
// the full history.
func (h *History) Last(n int) []decision.ActionRecord {
	if n <= 0 || n >= len(h.records) {
		return h.records
	}
	return h.records[len(h.records)-n:]
}

// FormatForPrompt renders the last PromptWindow records as compact text
// for inclusion in the Decider's prompt.
func (h *History) FormatForPrompt() string {
	recent := h.Last(PromptWindow)
	if len(recent) == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range recent {
		status := "ok"
		if !r.Succeeded {
			status = "failed"
		}
		if r.Index != nil {
			fmt.Fprintf(&b, "%d. %s(index=%d) -> %s", r.Step, r.Action, *r.Index, status)
		} else {
			fmt.Fprintf(&b, "%d. %s -> %s", r.Step, r.Action, status)
		}
		if r.Message != "" {
			fmt.Fprintf(&b, " (%s)", r.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}
