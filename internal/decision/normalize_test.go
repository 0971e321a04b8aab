package decision

import "testing"

func TestNormalizeActionAliases(t *testing.T) {
	cases := map[string]UIAction{
		"click":              ActionTap,
		"TAP":                ActionTap,
		"fill":               ActionType,
		"submit":             ActionEnter,
		"scroll":             ActionSwipe,
		"long_press":         ActionLongPress,
		"launch":             ActionOpenApp,
		"navigate":           ActionOpenURL,
		"open_notifications": ActionNotifs,
		"finish":             ActionDone,
		"ui_tap":             ActionTap,
		"ui_done":            ActionDone,
	}
	for raw, want := range cases {
		got, ok := NormalizeAction(raw)
		if !ok || got != want {
			t.Errorf("NormalizeAction(%q) = (%q, %v), want (%q, true)", raw, got, ok, want)
		}
	}
}

func TestNormalizeActionCanonicalPassesThrough(t *testing.T) {
	got, ok := NormalizeAction("tap")
	if !ok || got != ActionTap {
		t.Errorf("canonical action name should resolve directly, got (%q, %v)", got, ok)
	}
}

func TestNormalizeActionUnknown(t *testing.T) {
	if _, ok := NormalizeAction("teleport"); ok {
		t.Errorf("unknown action should not normalize")
	}
}
