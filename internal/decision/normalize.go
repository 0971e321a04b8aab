package decision

import "strings"

// actionAliases maps loose spellings an LLM or a tool-call name might use
// onto the closed UIAction vocabulary. Keyed lower-case.
var actionAliases = map[string]UIAction{
	"tap": ActionTap, "click": ActionTap, "press": ActionTap,
	"type": ActionType, "input": ActionType, "fill": ActionType,
	"enter": ActionEnter, "submit": ActionEnter,
	"swipe": ActionSwipe, "scroll": ActionSwipe,
	"long": ActionLongPress, "longpress": ActionLongPress, "long_press": ActionLongPress,
	"back": ActionBack,
	"home": ActionHome,
	"open": ActionOpenApp, "open_app": ActionOpenApp, "launch": ActionOpenApp,
	"url": ActionOpenURL, "open_url": ActionOpenURL, "goto": ActionOpenURL, "navigate": ActionOpenURL,
	"search": ActionSearch,
	"notif": ActionNotifs, "notifications": ActionNotifs, "open_notifications": ActionNotifs,
	"quick": ActionQuickSet, "quick_settings": ActionQuickSet, "open_quick_settings": ActionQuickSet,
	"screenshot": ActionScreenshot,
	"wait":       ActionWait,
	"done":       ActionDone, "finish": ActionDone, "complete": ActionDone,
}

// NormalizeAction resolves a loosely-spelled action name (from either a
// raw LLM decision or a ui_-prefixed tool call name) to the closed
// UIAction vocabulary. Tool call names carry a "ui_" prefix which is
// stripped before lookup.
func NormalizeAction(raw string) (UIAction, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "ui_")
	if a, ok := actionAliases[s]; ok {
		return a, true
	}
	if UIAction(s).IsValid() {
		return UIAction(s), true
	}
	return "", false
}
