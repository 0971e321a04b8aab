// Package orchestrator implements C6: the state machine driving the
// Screen/Decision/History loop. Grounded on the teacher's
// internal/agent/loop.go AgenticLoop.Run shape (phases, channel-based
// event streaming, context-timeout wrapping, iteration counting), but
// driving the spec's UI-automation loop instead of a chat completion
// loop (§4.6).
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/haasonsaas/acc/internal/action"
	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
	"github.com/haasonsaas/acc/internal/history"
	"github.com/haasonsaas/acc/internal/observability"
	"github.com/haasonsaas/acc/internal/screen"
	"github.com/haasonsaas/acc/internal/tools"
)

// Outcome is the terminal state a run ended in, mapped 1:1 to the CLI's
// exit codes (§6): Done=0, Error=1, Cancelled=2, MaxSteps/MaxDuration=3.
type Outcome string

const (
	OutcomeDone      Outcome = "done"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeBudget    Outcome = "budget_exhausted"
)

// Result is Run's final return value once the event channel closes.
type Result struct {
	Outcome Outcome
	Steps   int
	Err     error
}

// Orchestrator wires together C1-C5 and drives the per-step procedure.
type Orchestrator struct {
	Screen   screen.Source
	Action   action.Sink
	Decider  *decider.Decider
	Tools    *tools.Registry
	AppTable []action.AppEntry

	Config  Config
	Logger  *slog.Logger
	Metrics *Metrics
	tracer  *observability.Tracer
}

// New builds an Orchestrator. Logger and Metrics may be nil. Tracing is a
// no-op unless OTEL_ENDPOINT names a collector (observability.NewTracer's
// own default when TraceConfig.Endpoint is empty).
func New(src screen.Source, sink action.Sink, d *decider.Decider, reg *tools.Registry, appTable []action.AppEntry, cfg Config, logger *slog.Logger, metrics *Metrics) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	tracer, _ := observability.NewTracer(observability.TraceConfig{
		ServiceName: "acc-orchestrator",
		Endpoint:    os.Getenv("OTEL_ENDPOINT"),
	})
	return &Orchestrator{
		Screen:   src,
		Action:   sink,
		Decider:  d,
		Tools:    reg,
		AppTable: appTable,
		Config:   sanitize(cfg),
		Logger:   logger,
		Metrics:  metrics,
		tracer:   tracer,
	}
}

// Run drives one full goal-to-completion automation run. The returned
// channel is closed once the run reaches a terminal state; the final
// Result is available from the second return value after the caller has
// drained the channel (mirrors the teacher's Run(ctx, ...) (<-chan
// *ResponseChunk, error) shape, generalized to the spec's Log/Step/Speak/
// Done/Error events).
func (o *Orchestrator) Run(ctx context.Context, goal string) (<-chan Event, *Result) {
	events := make(chan Event, 16)
	result := &Result{}

	ctx, cancel := context.WithTimeout(ctx, o.Config.MaxDuration)

	go func() {
		defer cancel()
		defer close(events)
		o.run(ctx, goal, events, result)
	}()

	return events, result
}

func (o *Orchestrator) run(ctx context.Context, goal string, events chan<- Event, result *Result) {
	h := history.New(history.NullRecorder{})
	detector := history.NewLoopDetector(h)
	step := 0

	emit := func(e Event) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	}

	finish := func(outcome Outcome, err error) {
		result.Outcome = outcome
		result.Steps = step
		result.Err = err
		o.Metrics.recordOutcome(string(outcome))
		if outcome == OutcomeBudget {
			o.Metrics.recordBudgetExhausted()
		}
	}

	emit(logEvent(step, "run starting"))

	if app, query, ok := DetectShortcut(goal); ok {
		for _, d := range BuildShortcutDecisions(app, query) {
			step++
			if !o.executeOne(ctx, step, d, h, emit) {
				finish(OutcomeError, errors.New("shortcut execution failed"))
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				emit(logEvent(step, "max duration exhausted"))
				finish(OutcomeBudget, ctx.Err())
			} else {
				finish(OutcomeCancelled, ctx.Err())
			}
			return
		default:
		}

		if step >= o.Config.MaxSteps {
			emit(logEvent(step, "max steps exhausted"))
			finish(OutcomeBudget, nil)
			return
		}

		step++
		o.Metrics.recordStep()

		d, outcome, err := o.decideStep(ctx, step, goal, h, detector)
		if err != nil {
			emit(errorEvent(step, err))
			finish(OutcomeError, err)
			return
		}

		switch d.Kind {
		case decision.KindTextAnswer:
			emit(speakEvent(step, d.Text))
			continue
		case decision.KindError:
			emit(errorEvent(step, errors.New(d.Err)))
			finish(OutcomeError, errors.New(d.Err))
			return
		case decision.KindUI:
			if d.UI.Action == decision.ActionDone {
				emit(doneEvent(step, "goal complete"))
				finish(OutcomeDone, nil)
				return
			}
			if !o.executeOne(ctx, step, *d.UI, h, emit) {
				// execution failure is recorded in history; the loop
				// continues so the next decide() sees the failure context.
			}
		default:
			emit(logEvent(step, "unresolved decision kind"))
		}

		if outcome != "" {
			finish(outcome, nil)
			return
		}

		select {
		case <-time.After(o.Config.StepDelay):
		case <-ctx.Done():
		}
	}
}

// decideStep builds the appropriate prompt variant, calls the Decider,
// and runs the ToolLoop if the Decider emitted tool calls.
func (o *Orchestrator) decideStep(ctx context.Context, step int, goal string, h *history.History, detector history.LoopDetector) (decision.Decision, Outcome, error) {
	stepCtx, span := o.tracer.TraceStep(ctx, step, string(o.Decider.Mode))
	defer span.End()

	scr, err := o.Screen.Capture(stepCtx, o.Config.MaxElements, o.Config.MaxTextLength)
	if err != nil {
		return decision.Decision{}, "", err
	}

	variant := decider.VariantNormal
	lastFailure := ""
	if detector.IsRepetitive() {
		variant = decider.VariantLoopRecovery
	} else if detector.HadRecentFailure() {
		variant = decider.VariantFailureRecovery
		lastFailure = detector.LastFailureMessage()
	}

	prompt := decider.PromptInput{
		Goal:        goal,
		ScreenText:  scr.CompactText,
		HistoryText: h.FormatForPrompt(),
		LastFailure: lastFailure,
		Variant:     variant,
	}

	var image []byte
	if o.Config.VisionEnabled {
		// A real ScreenSource may attach a screenshot to Screen in the
		// future; absent that, no image accompanies the prompt.
		image = nil
	}

	start := time.Now()
	d, err := o.Decider.Decide(stepCtx, prompt, o.Tools.Definitions(), image)
	o.Metrics.recordDecisionLatency(time.Since(start))
	if err != nil {
		var de *decider.Error
		if errors.As(err, &de) && de.Retryable() {
			// Every eligible backend already failed inside Decide; treat
			// this step as a no-op wait rather than aborting the run.
			span.RecordError(err)
			return decision.NewUIDecision(decision.UIDecision{Action: decision.ActionWait}), "", nil
		}
		span.RecordError(err)
		return decision.Decision{}, "", err
	}

	if d.Kind == decision.KindToolCalls {
		o.Metrics.recordToolCalls(len(d.ToolCalls))
		loop := tools.NewLoop(o.Tools, o.Decider)
		loop.MaxIterations = o.Config.MaxToolIterations
		resolved, err := loop.Run(stepCtx, prompt, o.Tools.Definitions(), image, d)
		if err != nil {
			return decision.Decision{}, "", err
		}
		d = resolved
	}

	return d, "", nil
}

// executeOne runs a single UI decision against the ActionSink and
// records the outcome into history. Returns false on failure (the caller
// decides whether that's fatal).
func (o *Orchestrator) executeOne(ctx context.Context, step int, d decision.UIDecision, h *history.History, emit func(Event)) bool {
	emit(stepEvent(step, d))

	res, err := o.Action.Execute(ctx, d)
	succeeded := err == nil && res.Success
	msg := res.Message
	if err != nil {
		msg = err.Error()
	}

	h.Append(decision.ActionRecord{
		Step:      step,
		Action:    d.Action,
		Index:     d.Index,
		Text:      d.Text,
		Succeeded: succeeded,
		Message:   msg,
	})

	if !succeeded {
		emit(logEvent(step, "action failed: "+msg))
	}
	return succeeded
}
