package orchestrator

import (
	"regexp"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// knownAppKeywords maps a goal-text keyword to the app-launch table
// label the Orchestrator should resolve via action.MatchApp before
// entering the main step loop, shortcutting the "find and tap the app
// icon" steps an LLM would otherwise spend its budget on (§9 Open
// Question: shortcut-open heuristic).
var knownAppKeywords = []string{
	"youtube", "chrome", "whatsapp", "gmail", "spotify", "maps", "camera", "settings",
}

var clockKeywordRe = regexp.MustCompile(`\b(clock|timer|alarm)\b`)

// searchQueryRe extracts a quoted or trailing phrase after "search for"
// / "play" used to pre-fill a YouTube/Spotify search once the app opens.
var searchQueryRe = regexp.MustCompile(`(?i)(?:search for|play|search)\s+"?([^"]+)"?$`)

// DetectShortcut scans goal for a known app-launch keyword and, for
// YouTube/Spotify, an embedded search query. ok is false when no
// shortcut applies and the Orchestrator should proceed straight to the
// normal step loop.
func DetectShortcut(goal string) (app string, query string, ok bool) {
	lower := strings.ToLower(goal)

	for _, kw := range knownAppKeywords {
		if strings.Contains(lower, kw) {
			app = kw
			ok = true
			break
		}
	}
	if !ok && clockKeywordRe.MatchString(lower) {
		app = "clock"
		ok = true
	}
	if !ok {
		return "", "", false
	}

	if app == "youtube" || app == "spotify" {
		if m := searchQueryRe.FindStringSubmatch(goal); len(m) == 2 {
			query = strings.TrimSpace(m[1])
		}
	}

	return app, query, true
}

// BuildShortcutDecisions returns the UI decision(s) a detected shortcut
// should execute before the normal step loop begins: always an "open"
// targeting app, optionally followed by a "search" for query.
func BuildShortcutDecisions(app, query string) []decision.UIDecision {
	decisions := []decision.UIDecision{
		{Action: decision.ActionOpenApp, Text: app},
	}
	if query != "" {
		decisions = append(decisions, decision.UIDecision{Action: decision.ActionSearch, Query: query})
	}
	return decisions
}
