package builtin

import (
	"context"
	"encoding/json"

	"github.com/atotto/clipboard"
)

// ClipboardTool reads the host clipboard's current text contents.
type ClipboardTool struct{}

func (ClipboardTool) Name() string        { return "get_clipboard" }
func (ClipboardTool) Description() string { return "Returns the current text contents of the system clipboard." }
func (ClipboardTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

func (ClipboardTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "unavailable", nil
	}
	if text == "" {
		return "(empty)", nil
	}
	return text, nil
}
