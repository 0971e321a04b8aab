// Command acc drives one goal-to-completion UI automation run: capture a
// screen, ask a Decider what to do, execute it, repeat until the goal is
// done or a budget is exhausted. Built on github.com/spf13/cobra, the
// teacher's CLI framework (cmd/nexus/main.go), trimmed from a
// multi-channel gateway's serve/migrate/status command tree down to the
// single `run` verb this domain needs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"

	"github.com/haasonsaas/acc/internal/action"
	actionwd "github.com/haasonsaas/acc/internal/action/webdriver"
	"github.com/haasonsaas/acc/internal/config"
	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decider/providers"
	"github.com/haasonsaas/acc/internal/observability"
	"github.com/haasonsaas/acc/internal/orchestrator"
	"github.com/haasonsaas/acc/internal/screen"
	screenwd "github.com/haasonsaas/acc/internal/screen/webdriver"
	"github.com/haasonsaas/acc/internal/tools"
	"github.com/haasonsaas/acc/internal/tools/builtin"
	"github.com/haasonsaas/acc/internal/tools/uitools"
)

// Exit codes, exactly as named in §6: 0 done, 1 error, 2 cancelled,
// 3 budget exhausted, 4 configuration error.
const (
	exitDone      = 0
	exitError     = 1
	exitCancelled = 2
	exitBudget    = 3
	exitConfig    = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		goal        string
		modelFlag   string
		maxSteps    int
		maxDuration int
		visionFlag  string
		configPath  string
		target      string
	)

	exitCode := exitDone

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one goal-to-completion UI automation session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := runGoal(cmd.Context(), runOptions{
				goal:        goal,
				model:       modelFlag,
				maxSteps:    maxSteps,
				maxDuration: maxDuration,
				vision:      visionFlag,
				configPath:  configPath,
				target:      target,
			})
			exitCode = code
			return err
		},
		SilenceUsage: true,
	}
	runCmd.Flags().StringVar(&goal, "goal", "", "natural-language goal to accomplish (required)")
	runCmd.Flags().StringVar(&modelFlag, "model", "auto", "decider backend: local, remote, or auto")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "override configured max steps")
	runCmd.Flags().IntVar(&maxDuration, "max-duration", 0, "override configured max duration, seconds")
	runCmd.Flags().StringVar(&visionFlag, "vision", "", "on or off; overrides config")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to acc.yaml")
	runCmd.Flags().StringVar(&target, "target", "", `"web://<url>" to drive a live page via Playwright; omitted runs against the built-in simulator`)
	_ = runCmd.MarkFlagRequired("goal")

	rootCmd := &cobra.Command{Use: "acc", Short: "Agent Control Core: decide-and-act loop over a UI"}
	rootCmd.AddCommand(runCmd)
	rootCmd.SetArgs(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if exitCode == exitDone {
			exitCode = exitError
		}
		slog.Error("run failed", "error", err)
	}
	return exitCode
}

type runOptions struct {
	goal        string
	model       string
	maxSteps    int
	maxDuration int
	vision      string
	configPath  string
	target      string
}

func runGoal(ctx context.Context, opts runOptions) (int, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return exitConfig, fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(&cfg, opts)

	obsLogger := observability.NewLogger(observability.LogConfig{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	d, err := buildDecider(cfg, obsLogger)
	if err != nil {
		return exitConfig, err
	}

	registry := buildRegistry()

	src, sink, cleanup, err := buildEndpoints(ctx, opts.target, cfg.AppTable())
	if err != nil {
		return exitConfig, err
	}
	defer cleanup()

	orchCfg := orchestrator.Config{
		MaxSteps:          cfg.Budgets.MaxSteps,
		MaxDuration:       cfg.MaxDuration(),
		StepDelay:         cfg.StepDelay(),
		MaxToolIterations: 5,
		VisionEnabled:     cfg.Vision.Enabled,
	}

	orch := orchestrator.New(src, sink, d, registry, cfg.AppTable(), orchCfg, obsLogger.Slog(), orchestrator.NewMetrics(nil))

	events, result := orch.Run(ctx, opts.goal)
	for ev := range events {
		logEvent(ev)
	}

	switch result.Outcome {
	case orchestrator.OutcomeDone:
		return exitDone, nil
	case orchestrator.OutcomeCancelled:
		return exitCancelled, result.Err
	case orchestrator.OutcomeBudget:
		return exitBudget, nil
	default:
		return exitError, result.Err
	}
}

func applyFlagOverrides(cfg *config.Config, opts runOptions) {
	if opts.model != "" {
		cfg.Mode = opts.model
	}
	if opts.maxSteps > 0 {
		cfg.Budgets.MaxSteps = opts.maxSteps
	}
	if opts.maxDuration > 0 {
		cfg.Budgets.MaxDurationSec = opts.maxDuration
	}
	switch strings.ToLower(opts.vision) {
	case "on":
		cfg.Vision.Enabled = true
	case "off":
		cfg.Vision.Enabled = false
	}
}

func buildDecider(cfg config.Config, logger *observability.Logger) (*decider.Decider, error) {
	var remote decider.Backend
	var err error
	switch cfg.Backend {
	case "openai":
		remote = providers.NewOpenAI(providers.OpenAIConfig{APIKey: cfg.Remote.APIKey, Model: cfg.Remote.Model})
	case "bedrock":
		remote, err = providers.NewBedrock(context.Background(), providers.BedrockConfig{Region: cfg.Remote.Region, Model: cfg.Remote.Model})
		if err != nil {
			return nil, fmt.Errorf("configure bedrock backend: %w", err)
		}
	default: // anthropic
		remote = providers.NewAnthropic(providers.AnthropicConfig{APIKey: cfg.Remote.APIKey, Model: cfg.Remote.Model})
	}

	var local decider.Backend
	if cfg.Local.Endpoint != "" || cfg.Mode != "remote" {
		local = providers.NewOllama(providers.OllamaConfig{BaseURL: cfg.Local.Endpoint, Model: cfg.Local.Model})
	}

	return decider.New(remote, local, decider.Mode(cfg.Mode), logger.Slog()), nil
}

func buildRegistry() *tools.Registry {
	reg := tools.NewRegistry()
	for _, t := range []tools.Tool{
		builtin.CurrentTimeTool{},
		builtin.CurrentDateTool{},
		builtin.NewBatteryLevelTool(builtin.NoHostInfo{}),
		builtin.NewDeviceInfoTool(builtin.NoHostInfo{}),
		builtin.ClipboardTool{},
		builtin.CalculateTool{},
		builtin.UnitConvertTool{},
		builtin.NewWeatherTool(),
	} {
		_ = reg.Register(t)
	}
	for _, t := range uitools.All() {
		_ = reg.Register(t)
	}
	return reg
}

// buildEndpoints wires a screen.Source/action.Sink pair: the in-memory
// simulator by default, or a live Playwright page when target names
// "web://<url>". cleanup must always be called, even on the error path
// where it is a no-op.
func buildEndpoints(ctx context.Context, target string, appTable []action.AppEntry) (screen.Source, action.Sink, func(), error) {
	noop := func() {}

	if target == "" {
		sim := screen.NewSimulator(screen.NewScreen("", nil))
		return sim, action.NewSimulator(sim, appTable), noop, nil
	}

	url, ok := strings.CutPrefix(target, "web://")
	if !ok {
		return nil, nil, noop, fmt.Errorf("unsupported --target %q, expected web://<url>", target)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, noop, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch()
	if err != nil {
		return nil, nil, noop, fmt.Errorf("launch browser: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		return nil, nil, noop, fmt.Errorf("open page: %w", err)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return nil, nil, noop, fmt.Errorf("navigate to %s: %w", url, err)
	}

	src := screenwd.New(page)
	sink := actionwd.New(page, src, appTable)

	cleanup := func() {
		_ = browser.Close()
		_ = pw.Stop()
	}
	return src, sink, cleanup, nil
}

func logEvent(ev orchestrator.Event) {
	attrs := []any{"step", ev.Step}
	switch ev.Type {
	case orchestrator.EventError:
		if ev.Err != nil {
			attrs = append(attrs, "error", ev.Err)
		}
		slog.Error(string(ev.Type), attrs...)
	default:
		if ev.Message != "" {
			attrs = append(attrs, "message", ev.Message)
		}
		slog.Info(string(ev.Type), attrs...)
	}
}
