// Package webdriver implements C2 (ActionSink) against a live
// Playwright page, grounded on the teacher's internal/tools/browser
// package (playwright.Page Click/Fill/Goto/Screenshot), paired with a
// screen/webdriver.Source for index->element resolution the way the
// in-memory action.Simulator pairs with a screen.Simulator.
package webdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/haasonsaas/acc/internal/action"
	"github.com/haasonsaas/acc/internal/decision"
	swebdriver "github.com/haasonsaas/acc/internal/screen/webdriver"
)

// Sink executes UIDecisions against a live page. Tap/type/enter/long
// press resolve their index through src, which must be the same Source
// used to produce the Screen the decision was made against.
type Sink struct {
	page     playwright.Page
	src      *swebdriver.Source
	AppTable []action.AppEntry

	// LastScreenshot holds the PNG bytes from the most recent
	// ActionScreenshot execution, for a caller that wants to attach it to
	// a vision-enabled prompt.
	LastScreenshot []byte
}

// New builds a Sink bound to page and the Source that captures it.
func New(page playwright.Page, src *swebdriver.Source, appTable []action.AppEntry) *Sink {
	return &Sink{page: page, src: src, AppTable: appTable}
}

// Execute performs d against the live page. Mobile-only actions
// (notifications shade, quick settings) have no web equivalent and
// return a non-fatal "unsupported on web target" result rather than an
// error, so an Orchestrator driving a web target doesn't abort a run over
// an action a human operator would simply skip.
func (s *Sink) Execute(ctx context.Context, d decision.UIDecision) (action.Result, error) {
	select {
	case <-ctx.Done():
		return action.Result{}, ctx.Err()
	default:
	}

	if d.Action.RequiresIndex() {
		if d.Index == nil {
			return action.Result{Success: false, Message: "missing index for " + string(d.Action)}, nil
		}
		el, ok := s.src.Lookup(*d.Index)
		if !ok {
			return action.Result{Success: false, Message: fmt.Sprintf("no element at index %d", *d.Index)}, nil
		}
		scr, _ := el.GetAttribute("id")
		if action.Blocked(d.Text, scr) {
			return action.Result{Success: false, Message: "action blocked by policy"}, nil
		}
		return s.executeOnElement(d, el)
	}

	switch d.Action {
	case decision.ActionBack:
		if _, err := s.page.GoBack(); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "navigated back"}, nil

	case decision.ActionHome:
		return action.Result{Success: true, Message: "unsupported on web target"}, nil

	case decision.ActionOpenApp:
		query := action.OpenAppQuery(d)
		entry, score, ok := action.MatchApp(query, s.AppTable)
		if !ok {
			return action.Result{Success: false, Message: "no matching app for " + query}, nil
		}
		if action.Blocked(entry.Label, entry.Target) {
			return action.Result{Success: false, Message: "action blocked by policy"}, nil
		}
		if _, err := s.page.Goto(entry.Target, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		}); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: fmt.Sprintf("opened %s (score %d)", entry.Label, score)}, nil

	case decision.ActionOpenURL:
		url := d.URL
		if url == "" {
			url = d.Text
		}
		if _, err := s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		}); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "opened " + url}, nil

	case decision.ActionSearch:
		return s.executeSearch(d.Query)

	case decision.ActionNotifs, decision.ActionQuickSet:
		return action.Result{Success: true, Message: "unsupported on web target"}, nil

	case decision.ActionScreenshot:
		shot, err := s.page.Screenshot(playwright.PageScreenshotOptions{Type: playwright.ScreenshotTypePng})
		if err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		s.LastScreenshot = shot
		return action.Result{Success: true, Message: fmt.Sprintf("captured %d bytes", len(shot))}, nil

	case decision.ActionWait:
		time.Sleep(500 * time.Millisecond)
		return action.Result{Success: true, Message: "waited"}, nil

	case decision.ActionDone:
		return action.Result{Success: true, Message: "done"}, nil

	default:
		return action.Result{Success: false, Message: "unhandled action " + string(d.Action)}, nil
	}
}

func (s *Sink) executeOnElement(d decision.UIDecision, el playwright.ElementHandle) (action.Result, error) {
	switch d.Action {
	case decision.ActionTap:
		if err := el.Click(); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "tapped element"}, nil

	case decision.ActionLongPress:
		if err := el.Click(playwright.ElementHandleClickOptions{Delay: playwright.Float(600)}); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "long-pressed element"}, nil

	case decision.ActionType:
		if err := el.Fill(d.Text); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "typed into element"}, nil

	case decision.ActionEnter:
		if err := el.Press("Enter"); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "pressed enter"}, nil

	default:
		return action.Result{Success: false, Message: "action does not apply to an element"}, nil
	}
}

// executeSearch fills the page's first search-like input with query and
// submits it, the heuristic a human would fall back to when no indexed
// element is named for "the search box".
func (s *Sink) executeSearch(query string) (action.Result, error) {
	for _, sel := range []string{`input[type="search"]`, `input[name="q"]`, `input[type="text"]`} {
		handle, err := s.page.QuerySelector(sel)
		if err != nil || handle == nil {
			continue
		}
		if err := handle.Fill(query); err != nil {
			continue
		}
		if err := handle.Press("Enter"); err != nil {
			return action.Result{Success: false, Message: err.Error()}, nil
		}
		return action.Result{Success: true, Message: "searched for " + query}, nil
	}
	return action.Result{Success: false, Message: "no search input found"}, nil
}
