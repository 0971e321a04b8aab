// Package action defines the ActionSink port (C2), an in-memory Simulator
// implementation, the app-launch fuzzy matcher, and the action blocklist.
package action

import (
	"context"
	"regexp"
	"strings"

	"github.com/haasonsaas/acc/internal/decision"
)

// Result is the outcome of executing one decision.UIDecision.
type Result struct {
	Success bool
	Message string
}

// Sink is the ActionSink port (C2): execute a validated UI decision
// against a device, page, or fixture.
type Sink interface {
	// Execute performs the action described by d. Implementations treat
	// ctx cancellation as a suspension point (§5).
	Execute(ctx context.Context, d decision.UIDecision) (Result, error)
}

// AppEntry is one row of the configurable app-launch table consulted by
// ActionOpenApp: label is the human-readable app name as a user or LLM
// would name it, target is implementation-specific (a package name for a
// device sink, a URL for a web-driver sink).
type AppEntry struct {
	Label   string
	Target  string
	Aliases []string
}

// ambiguousToken is the one domain-ambiguous query term (matches Spotify,
// Apple Music, YouTube Music alike) the ladder demotes out of its
// higher-confidence substring tiers (§4.2).
const ambiguousToken = "music"

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeAppTerm lowercases s and strips everything but letters and
// digits, per §4.2's normalization rule.
func normalizeAppTerm(s string) string {
	return nonAlphanumericRe.ReplaceAllString(strings.ToLower(s), "")
}

// packageWordRe splits a package name/URL into its alphanumeric runs,
// e.g. "com.spotify.music" -> ["com", "spotify", "music"].
var packageWordRe = regexp.MustCompile(`[a-z0-9]+`)

func packageWords(target string) []string {
	return packageWordRe.FindAllString(strings.ToLower(target), -1)
}

// MatchApp scores every candidate against query using the fuzzy ladder
// from §4.2 and returns the best match. ok is false if no candidate
// scores above zero. Ties are broken by lexicographic package (Target)
// name.
//
// Scoring ladder (highest wins):
//
//	100  exact normalized label match
//	 80  label prefix
//	 75  any target word equals label (query)
//	 70  package suffix match
//	 60  substring match excluding the ambiguous "music" token
//	 50  package substring excluding that token
//	 45  word-level package substring
//	 30  label substring
//	 20  package substring
func MatchApp(query string, table []AppEntry) (AppEntry, int, bool) {
	q := normalizeAppTerm(query)
	if q == "" {
		return AppEntry{}, 0, false
	}

	best := AppEntry{}
	bestScore := 0
	for _, entry := range table {
		score := scoreApp(q, entry)
		if score > bestScore || (score == bestScore && score > 0 && entry.Target < best.Target) {
			bestScore = score
			best = entry
		}
	}
	return best, bestScore, bestScore > 0
}

func scoreApp(q string, entry AppEntry) int {
	label := normalizeAppTerm(entry.Label)
	target := normalizeAppTerm(entry.Target)
	words := packageWords(entry.Target)

	if label == q {
		return 100
	}
	if strings.HasPrefix(label, q) {
		return 80
	}
	for _, w := range words {
		if w == q {
			return 75
		}
	}
	if strings.HasSuffix(target, q) {
		return 70
	}
	if q != ambiguousToken && strings.Contains(label, q) {
		return 60
	}
	if q != ambiguousToken && strings.Contains(target, q) {
		return 50
	}
	for _, w := range words {
		if strings.Contains(w, q) {
			return 45
		}
	}
	if strings.Contains(label, q) {
		return 30
	}
	if strings.Contains(target, q) {
		return 20
	}
	return 0
}

// DefaultBlocklist is the set of resource-id/label substrings an
// ActionSink must refuse to act on, regardless of the decision it was
// handed — the only policy/safety filtering this module performs (§6
// Non-goals: "no policy/safety filtering beyond the blocklist").
var DefaultBlocklist = []string{
	"com.android.settings.FACTORY_RESET",
	"com.android.settings.ACCOUNT_SYNC",
	"payment_confirm",
	"delete_account",
}

// OpenAppQuery picks the app name a decision.UIDecision carries for
// ActionOpenApp: the App field from a mid-run Decider response (§4.3),
// falling back to Text (the pre-launch shortcut convention, §9) and
// then Query.
func OpenAppQuery(d decision.UIDecision) string {
	switch {
	case d.App != "":
		return d.App
	case d.Text != "":
		return d.Text
	default:
		return d.Query
	}
}

// Blocked reports whether label or resourceID matches an entry of
// DefaultBlocklist as a case-insensitive substring.
func Blocked(label, resourceID string) bool {
	l := strings.ToLower(label)
	r := strings.ToLower(resourceID)
	for _, b := range DefaultBlocklist {
		bl := strings.ToLower(b)
		if strings.Contains(l, bl) || strings.Contains(r, bl) {
			return true
		}
	}
	return false
}
