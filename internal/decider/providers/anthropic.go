// Package providers implements the decider.Backend contract against real
// model transports: Anthropic and OpenAI's hosted APIs, AWS Bedrock's
// Converse API, and a local Ollama daemon. Each is a single-turn
// request/response wrapper, generalized from the teacher's streaming
// chat-completion providers (internal/agent/providers) down to §4.3's
// decide()-shaped contract.
package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/haasonsaas/acc/internal/backoff"
	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

// Anthropic implements decider.Backend over github.com/anthropics/anthropic-sdk-go.
// Supports native tool use and vision, temperature pinned to 0 per §4.3.
type Anthropic struct {
	client        anthropic.Client
	model         string
	maxRetries    int
	backoffPolicy backoff.BackoffPolicy
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAnthropic builds an Anthropic backend. It never fails: an empty
// APIKey only omits the key option from the client, and any resulting
// authentication failure surfaces from Complete as the SDK's own error.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5-20250929"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &Anthropic{
		client:        anthropic.NewClient(opts...),
		model:         cfg.Model,
		maxRetries:    cfg.MaxRetries,
		backoffPolicy: policyFromDelay(cfg.RetryDelay),
	}
}

func (p *Anthropic) Name() string          { return "anthropic" }
func (p *Anthropic) SupportsTools() bool   { return true }
func (p *Anthropic) SupportsVision() bool  { return true }

// Complete sends one non-streaming Messages.New call, retrying transient
// failures with jittered exponential backoff.
func (p *Anthropic) Complete(ctx context.Context, req decider.Request) (*decider.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(defaultInt(req.MaxTokens, 1024)),
		Temperature: anthropic.Float(req.Temperature),
		Messages:    []anthropic.MessageParam{p.buildUserMessage(req)},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if len(req.Tools) > 0 {
		params.Tools = p.convertTools(req.Tools)
	}

	var msg *anthropic.Message
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff.ComputeBackoff(p.backoffPolicy, attempt)):
			}
		}
		msg, lastErr = p.client.Messages.New(ctx, params)
		if lastErr == nil {
			break
		}
		if !isRetryableAnthropicError(lastErr) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	return p.convertResponse(msg), nil
}

func (p *Anthropic) buildUserMessage(req decider.Request) anthropic.MessageParam {
	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(req.UserPrompt)}
	if len(req.Image) > 0 {
		encoded := base64.StdEncoding.EncodeToString(req.Image)
		blocks = append(blocks, anthropic.NewImageBlockBase64("image/jpeg", encoded))
	}
	return anthropic.NewUserMessage(blocks...)
}

func (p *Anthropic) convertTools(tools []decision.ToolDefinition) []anthropic.ToolUnionParam {
	result := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var schemaMap map[string]any
		if err := json.Unmarshal(t.Schema, &schemaMap); err != nil {
			schemaMap = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		props, _ := schemaMap["properties"].(map[string]any)
		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{Properties: props},
			},
		})
	}
	return result
}

func (p *Anthropic) convertResponse(msg *anthropic.Message) *decider.Response {
	resp := &decider.Response{}
	var text strings.Builder
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			resp.ToolCalls = append(resp.ToolCalls, decision.ToolCall{
				ID:    b.ID,
				Name:  b.Name,
				Input: json.RawMessage(b.Input),
			})
		}
	}
	resp.Text = text.String()
	return resp
}

func isRetryableAnthropicError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection") || strings.Contains(msg, "rate limit")
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
