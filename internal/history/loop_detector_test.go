package history

import (
	"testing"

	"github.com/haasonsaas/acc/internal/decision"
)

func idx(n int) *int { return &n }

func TestIsRepetitiveLastTwoIdentical(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Index: idx(3)})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionTap, Index: idx(3)})

	d := NewLoopDetector(h)
	if !d.IsRepetitive() {
		t.Errorf("expected two identical taps on the same index to be flagged repetitive")
	}
}

func TestIsRepetitiveDifferentIndexNotFlagged(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Index: idx(1)})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionTap, Index: idx(2)})

	d := NewLoopDetector(h)
	if d.IsRepetitive() {
		t.Errorf("taps on different indices should not be flagged repetitive")
	}
}

func TestIsRepetitiveABABPattern(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Index: idx(1)})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionBack})
	h.Append(decision.ActionRecord{Step: 2, Action: decision.ActionTap, Index: idx(1)})
	h.Append(decision.ActionRecord{Step: 3, Action: decision.ActionBack})

	d := NewLoopDetector(h)
	if !d.IsRepetitive() {
		t.Errorf("expected A-B-A-B alternation over last 4 records to be flagged")
	}
}

func TestIsRepetitiveThreeOfSixSameAction(t *testing.T) {
	h := New(nil)
	actions := []decision.UIAction{
		decision.ActionTap, decision.ActionWait, decision.ActionTap,
		decision.ActionWait, decision.ActionTap, decision.ActionBack,
	}
	for i, a := range actions {
		h.Append(decision.ActionRecord{Step: i, Action: a})
	}
	d := NewLoopDetector(h)
	if !d.IsRepetitive() {
		t.Errorf("expected 3 occurrences of the same action within last 6 to be flagged")
	}
}

func TestIsRepetitiveThreeTapsOnDifferentIndicesNotFlagged(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Index: idx(1)})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 2, Action: decision.ActionTap, Index: idx(2)})
	h.Append(decision.ActionRecord{Step: 3, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 4, Action: decision.ActionTap, Index: idx(3)})
	h.Append(decision.ActionRecord{Step: 5, Action: decision.ActionBack})

	d := NewLoopDetector(h)
	if d.IsRepetitive() {
		t.Errorf("3 taps on 3 distinct indices within the last 6 records should not be flagged repetitive")
	}
}

func TestIsRepetitiveThreeOpensOfDifferentAppsNotFlagged(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionOpenApp, Text: "Spotify"})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 2, Action: decision.ActionOpenApp, Text: "Maps"})
	h.Append(decision.ActionRecord{Step: 3, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 4, Action: decision.ActionOpenApp, Text: "Camera"})
	h.Append(decision.ActionRecord{Step: 5, Action: decision.ActionBack})

	d := NewLoopDetector(h)
	if d.IsRepetitive() {
		t.Errorf("3 opens of 3 distinct apps within the last 6 records should not be flagged repetitive")
	}
}

func TestIsRepetitiveThreeOfSixSameIndexFlagged(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Index: idx(4)})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 2, Action: decision.ActionTap, Index: idx(4)})
	h.Append(decision.ActionRecord{Step: 3, Action: decision.ActionWait})
	h.Append(decision.ActionRecord{Step: 4, Action: decision.ActionTap, Index: idx(4)})
	h.Append(decision.ActionRecord{Step: 5, Action: decision.ActionBack})

	d := NewLoopDetector(h)
	if !d.IsRepetitive() {
		t.Errorf("3 taps on the same index within the last 6 records should be flagged repetitive")
	}
}

func TestIsRepetitiveTooFewRecords(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap})
	d := NewLoopDetector(h)
	if d.IsRepetitive() {
		t.Errorf("a single record can never be repetitive")
	}
}

func TestHadRecentFailureAndMessage(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Succeeded: true})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionType, Succeeded: false, Message: "no element"})

	d := NewLoopDetector(h)
	if !d.HadRecentFailure() {
		t.Errorf("expected recent failure to be detected")
	}
	if got := d.LastFailureMessage(); got != "no element" {
		t.Errorf("LastFailureMessage() = %q, want %q", got, "no element")
	}
}

func TestHadRecentFailureFalseWhenAllSucceeded(t *testing.T) {
	h := New(nil)
	h.Append(decision.ActionRecord{Step: 0, Action: decision.ActionTap, Succeeded: true})
	h.Append(decision.ActionRecord{Step: 1, Action: decision.ActionTap, Succeeded: true})

	d := NewLoopDetector(h)
	if d.HadRecentFailure() {
		t.Errorf("expected no failure detected")
	}
	if got := d.LastFailureMessage(); got != "" {
		t.Errorf("LastFailureMessage() = %q, want empty", got)
	}
}
