package decision

import "testing"

func TestUIActionIsValid(t *testing.T) {
	if !ActionTap.IsValid() {
		t.Errorf("ActionTap should be valid")
	}
	if UIAction("flibbertigibbet").IsValid() {
		t.Errorf("unknown action should not be valid")
	}
}

func TestUIActionRequiresIndex(t *testing.T) {
	cases := map[UIAction]bool{
		ActionTap:       true,
		ActionType:      true,
		ActionEnter:     true,
		ActionLongPress: true,
		ActionSwipe:     false,
		ActionBack:      false,
		ActionOpenApp:   false,
		ActionDone:      false,
	}
	for action, want := range cases {
		if got := action.RequiresIndex(); got != want {
			t.Errorf("%s.RequiresIndex() = %v, want %v", action, got, want)
		}
	}
}

func TestDecisionConstructorsSetExactlyOneKind(t *testing.T) {
	idx := 3
	ui := NewUIDecision(UIDecision{Action: ActionTap, Index: &idx})
	if ui.Kind != KindUI || ui.UI == nil {
		t.Errorf("NewUIDecision: got %+v", ui)
	}
	if ui.ToolCalls != nil || ui.Text != "" || ui.Err != "" {
		t.Errorf("NewUIDecision populated unrelated fields: %+v", ui)
	}

	tc := NewToolCallsDecision([]ToolCall{{ID: "1", Name: "get_weather"}})
	if tc.Kind != KindToolCalls || len(tc.ToolCalls) != 1 {
		t.Errorf("NewToolCallsDecision: got %+v", tc)
	}
	if tc.UI != nil {
		t.Errorf("NewToolCallsDecision should not populate UI: %+v", tc)
	}

	ans := NewTextAnswerDecision("the weather is sunny")
	if ans.Kind != KindTextAnswer || ans.Text == "" {
		t.Errorf("NewTextAnswerDecision: got %+v", ans)
	}

	errD := NewErrorDecision("boom")
	if errD.Kind != KindError || errD.Err != "boom" {
		t.Errorf("NewErrorDecision: got %+v", errD)
	}
}
