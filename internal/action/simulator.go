package action

import (
	"context"
	"fmt"

	"github.com/haasonsaas/acc/internal/decision"
	"github.com/haasonsaas/acc/internal/screen"
)

// Simulator is an in-memory ActionSink fixture that records every
// executed decision and, when paired with a screen.Simulator, can
// validate that tap/type/enter targets resolve to a real element index.
type Simulator struct {
	scr      *screen.Simulator
	Executed []decision.UIDecision
	AppTable []AppEntry
}

// NewSimulator builds a Simulator bound to the given screen.Simulator for
// index validation. scr may be nil if the caller doesn't need index
// resolution (e.g. a test driving the action package in isolation).
func NewSimulator(scr *screen.Simulator, appTable []AppEntry) *Simulator {
	return &Simulator{scr: scr, AppTable: appTable}
}

// Execute records d and performs minimal validation: tap/type/enter/long
// press must reference a resolvable, non-blocklisted element index when a
// bound screen.Simulator is available.
func (s *Simulator) Execute(ctx context.Context, d decision.UIDecision) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	s.Executed = append(s.Executed, d)

	if d.Action.RequiresIndex() {
		if d.Index == nil {
			return Result{Success: false, Message: "missing index for " + string(d.Action)}, nil
		}
		if s.scr != nil {
			el, ok := s.scr.Current().Lookup(*d.Index)
			if !ok {
				return Result{Success: false, Message: fmt.Sprintf("no element at index %d", *d.Index)}, nil
			}
			if Blocked(el.Label, el.ResourceID) {
				return Result{Success: false, Message: "action blocked by policy"}, nil
			}
		}
	}

	if d.Action == decision.ActionOpenApp {
		query := OpenAppQuery(d)
		entry, score, ok := MatchApp(query, s.AppTable)
		if !ok {
			return Result{Success: false, Message: "no matching app for " + query}, nil
		}
		if Blocked(entry.Label, entry.Target) {
			return Result{Success: false, Message: "action blocked by policy"}, nil
		}
		return Result{Success: true, Message: fmt.Sprintf("opened %s (score %d)", entry.Label, score)}, nil
	}

	return Result{Success: true, Message: "ok"}, nil
}
