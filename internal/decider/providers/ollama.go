package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

// Ollama implements decider.Backend as the Local backend: an on-device
// generator reached over the Ollama daemon's HTTP API. When tools are
// registered it supplies Ollama's native tool-calling field; when the
// caller strips tools (because the model doesn't advertise function
// calling support) the Decider instead appends a text tool catalog and
// this backend's raw text gets parsed by decider.ParseResponse's
// <tool_call> tag path.
type Ollama struct {
	client  *http.Client
	baseURL string
	model   string
}

// OllamaConfig configures the Ollama backend.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOllama builds an Ollama backend.
func NewOllama(cfg OllamaConfig) *Ollama {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	model := cfg.Model
	if model == "" {
		model = "llama3.2"
	}
	return &Ollama{client: &http.Client{Timeout: timeout}, baseURL: baseURL, model: model}
}

func (p *Ollama) Name() string         { return "ollama" }
func (p *Ollama) SupportsTools() bool  { return true }
func (p *Ollama) SupportsVision() bool { return false }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaTool struct {
	Type     string         `json:"type"`
	Function ollamaFunction `json:"function"`
}

type ollamaFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Messages []ollamaMessage `json:"messages"`
	Tools    []ollamaTool   `json:"tools,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

type ollamaChatResponse struct {
	Message struct {
		Content   string           `json:"content"`
		ToolCalls []ollamaToolCall `json:"tool_calls"`
	} `json:"message"`
	Error string `json:"error"`
}

// Complete posts one non-streaming /api/chat request. Ollama supports a
// "format":"json" grammar-constrained mode when no tools are present,
// matching the Local backend's two modes from §4.3.
func (p *Ollama) Complete(ctx context.Context, req decider.Request) (*decider.Response, error) {
	payload := ollamaChatRequest{
		Model:  p.model,
		Stream: false,
		Messages: []ollamaMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}
	if len(req.Tools) > 0 {
		payload.Tools = convertOllamaTools(req.Tools)
	} else {
		payload.Format = "json"
	}
	if req.MaxTokens > 0 {
		payload.Options = map[string]any{"num_predict": req.MaxTokens, "temperature": req.Temperature}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("ollama: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("ollama: %s", parsed.Error)
	}

	out := &decider.Response{Text: parsed.Message.Content}
	for i, tc := range parsed.Message.ToolCalls {
		args, err := json.Marshal(tc.Function.Arguments)
		if err != nil {
			continue
		}
		out.ToolCalls = append(out.ToolCalls, decision.ToolCall{
			ID:    fmt.Sprintf("ollama-call-%d", i),
			Name:  tc.Function.Name,
			Input: args,
		})
	}
	return out, nil
}

func convertOllamaTools(tools []decision.ToolDefinition) []ollamaTool {
	result := make([]ollamaTool, 0, len(tools))
	for _, t := range tools {
		var params map[string]any
		if err := json.Unmarshal(t.Schema, &params); err != nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		result = append(result, ollamaTool{
			Type: "function",
			Function: ollamaFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  params,
			},
		})
	}
	return result
}
