package history

import (
	"strconv"

	"github.com/haasonsaas/acc/internal/decision"
)

// LoopDetector evaluates the Orchestrator's repetition and failure
// predicates (§4.5) over a History.
type LoopDetector struct {
	history *History
}

// NewLoopDetector builds a LoopDetector bound to h.
func NewLoopDetector(h *History) LoopDetector {
	return LoopDetector{history: h}
}

// IsRepetitive reports whether the recent action sequence looks stuck:
// the last two actions are identical, the last four alternate A-B-A-B,
// or the same (action, target) pair appears 3+ times within the last
// six records.
func (d LoopDetector) IsRepetitive() bool {
	records := d.history.Last(6)
	if len(records) < 2 {
		return false
	}

	last := records[len(records)-1]
	secondLast := records[len(records)-2]
	if sameAction(last, secondLast) {
		return true
	}

	if len(records) >= 4 {
		a := records[len(records)-1]
		b := records[len(records)-2]
		c := records[len(records)-3]
		e := records[len(records)-4]
		if sameAction(a, c) && sameAction(b, e) && !sameAction(a, b) {
			return true
		}
	}

	counts := make(map[string]int)
	for _, r := range records {
		key := actionTargetKey(r)
		counts[key]++
		if counts[key] >= 3 {
			return true
		}
	}

	return false
}

// HadRecentFailure reports whether either of the last two recorded
// actions failed.
func (d LoopDetector) HadRecentFailure() bool {
	records := d.history.Last(2)
	for _, r := range records {
		if !r.Succeeded {
			return true
		}
	}
	return false
}

// LastFailureMessage returns the message of the most recent failed
// action, if any failure is present in the last two records.
func (d LoopDetector) LastFailureMessage() string {
	records := d.history.Last(2)
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].Succeeded {
			return records[i].Message
		}
	}
	return ""
}

func sameAction(a, b decision.ActionRecord) bool {
	return actionTargetKey(a) == actionTargetKey(b)
}

// actionTargetKey identifies a record by its (action, target) pair: the
// element index for index-targeted actions, the free-form text for
// everything else (app names, URLs, search queries). Two taps on
// different indices, or an open of two different apps, must not collide
// into the same key (§4.5).
func actionTargetKey(r decision.ActionRecord) string {
	if r.Index != nil {
		return string(r.Action) + "#" + strconv.Itoa(*r.Index)
	}
	return string(r.Action) + "#" + r.Text
}
