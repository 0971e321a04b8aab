package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/haasonsaas/acc/internal/backoff"
	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

// OpenAI implements decider.Backend over github.com/sashabaranov/go-openai,
// using JSON response-format mode when no tools are registered and native
// function calling otherwise.
type OpenAI struct {
	client        *openai.Client
	model         string
	maxRetries    int
	backoffPolicy backoff.BackoffPolicy
}

// OpenAIConfig configures the OpenAI backend.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

// NewOpenAI builds an OpenAI backend.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	var client *openai.Client
	if cfg.APIKey != "" {
		client = openai.NewClient(cfg.APIKey)
	}
	return &OpenAI{client: client, model: cfg.Model, maxRetries: cfg.MaxRetries, backoffPolicy: policyFromDelay(cfg.RetryDelay)}
}

func (p *OpenAI) Name() string         { return "openai" }
func (p *OpenAI) SupportsTools() bool  { return true }
func (p *OpenAI) SupportsVision() bool { return true }

func (p *OpenAI) Complete(ctx context.Context, req decider.Request) (*decider.Response, error) {
	if p.client == nil {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	messages := p.buildMessages(req)
	chatReq := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = p.convertTools(req.Tools)
	} else {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	var resp openai.ChatCompletionResponse
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff.ComputeBackoff(p.backoffPolicy, attempt)):
			}
		}
		resp, lastErr = p.client.CreateChatCompletion(ctx, chatReq)
		if lastErr == nil {
			break
		}
		if !isRetryableOpenAIError(lastErr) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices")
	}

	return p.convertResponse(resp.Choices[0].Message), nil
}

func (p *OpenAI) buildMessages(req decider.Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}

	if len(req.Image) == 0 {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})
		return messages
	}

	encoded := "data:image/jpeg;base64," + base64Encode(req.Image)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.UserPrompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: encoded, Detail: openai.ImageURLDetailLow}},
		},
	})
	return messages
}

func (p *OpenAI) convertTools(tools []decision.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, len(tools))
	for i, t := range tools {
		var schemaMap map[string]any
		if err := json.Unmarshal(t.Schema, &schemaMap); err != nil {
			schemaMap = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  schemaMap,
			},
		}
	}
	return result
}

func (p *OpenAI) convertResponse(msg openai.ChatCompletionMessage) *decider.Response {
	resp := &decider.Response{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, decision.ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: json.RawMessage(tc.Function.Arguments),
		})
	}
	return resp
}

func isRetryableOpenAIError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"rate limit", "429", "500", "502", "503", "504", "timeout", "deadline exceeded"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
