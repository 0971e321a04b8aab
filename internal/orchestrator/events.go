package orchestrator

import "github.com/haasonsaas/acc/internal/decision"

// EventType discriminates an Event, mirroring the teacher's
// pkg/models.RuntimeEventType enum generalized from a chat agentic loop
// to the run-level events a UI automation step emits.
type EventType string

const (
	EventLog   EventType = "log"
	EventStep  EventType = "step"
	EventSpeak EventType = "speak"
	EventDone  EventType = "done"
	EventError EventType = "error"
)

// Event is one lifecycle notification streamed from Run's event channel.
type Event struct {
	Type    EventType
	Step    int
	Message string
	Action  *decision.UIDecision
	Err     error
}

func logEvent(step int, msg string) Event {
	return Event{Type: EventLog, Step: step, Message: msg}
}

func stepEvent(step int, action decision.UIDecision) Event {
	return Event{Type: EventStep, Step: step, Action: &action}
}

func speakEvent(step int, msg string) Event {
	return Event{Type: EventSpeak, Step: step, Message: msg}
}

func doneEvent(step int, msg string) Event {
	return Event{Type: EventDone, Step: step, Message: msg}
}

func errorEvent(step int, err error) Event {
	return Event{Type: EventError, Step: step, Err: err}
}
