// Package builtin implements ACC's non-UI tools: small, host-independent
// capabilities a Decider can call mid-step without touching the screen.
package builtin

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/haasonsaas/acc/internal/datetime"
)

type timezoneInput struct {
	Timezone string `json:"timezone"`
}

// CurrentTimeTool reports the host clock's current time, resolving an
// optional IANA timezone input the way datetime.ResolveUserTimezone
// resolves a configured user preference, falling back to the host's own
// zone when the input is empty or invalid.
type CurrentTimeTool struct{}

func (CurrentTimeTool) Name() string { return "get_current_time" }
func (CurrentTimeTool) Description() string {
	return "Returns the current time, HH:MM:SS, optionally in a given IANA timezone."
}
func (CurrentTimeTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"timezone":{"type":"string","description":"IANA timezone, e.g. America/New_York"}}}`)
}

func (CurrentTimeTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var in timezoneInput
	_ = json.Unmarshal(input, &in)
	tz := datetime.ResolveUserTimezone(in.Timezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format("15:04:05"), nil
}

// CurrentDateTool reports the host clock's current date, in the same
// friendly "Weekday, Month Dayth, Year" form datetime.FormatUserTime
// produces for a chat reply, trimmed to the date portion.
type CurrentDateTool struct{}

func (CurrentDateTool) Name() string { return "get_current_date" }
func (CurrentDateTool) Description() string {
	return "Returns the current date, e.g. \"Friday, January 24th, 2026\", optionally in a given IANA timezone."
}
func (CurrentDateTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{"timezone":{"type":"string","description":"IANA timezone, e.g. America/New_York"}}}`)
}

func (CurrentDateTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	var in timezoneInput
	_ = json.Unmarshal(input, &in)
	tz := datetime.ResolveUserTimezone(in.Timezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	day := now.Day()
	return now.Format("Monday, January ") + strconv.Itoa(day) + datetime.OrdinalSuffix(day) + now.Format(", 2006"), nil
}
