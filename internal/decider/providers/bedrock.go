package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/haasonsaas/acc/internal/backoff"
	"github.com/haasonsaas/acc/internal/decider"
	"github.com/haasonsaas/acc/internal/decision"
)

// Bedrock implements decider.Backend over the AWS Bedrock Converse API —
// an alternate remote transport for teams running Claude (or another
// Converse-compatible model) through AWS instead of Anthropic directly.
// Shares the Remote role with Anthropic/OpenAI so the Decider's
// remote→local fallback stays backend-agnostic.
type Bedrock struct {
	client        *bedrockruntime.Client
	model         string
	maxRetries    int
	backoffPolicy backoff.BackoffPolicy
}

// BedrockConfig configures the Bedrock backend.
type BedrockConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Model           string
	MaxRetries      int
	RetryDelay      time.Duration
}

// NewBedrock builds a Bedrock backend, loading AWS credentials from the
// explicit config fields if present, otherwise the default credential
// chain (env, IAM role).
func NewBedrock(ctx context.Context, cfg BedrockConfig) (*Bedrock, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Model == "" {
		cfg.Model = "anthropic.claude-3-5-sonnet-20241022-v2:0"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	var awsCfg aws.Config
	var err error
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)),
		)
	} else {
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("bedrock: failed to load AWS config: %w", err)
	}

	return &Bedrock{
		client:        bedrockruntime.NewFromConfig(awsCfg),
		model:         cfg.Model,
		maxRetries:    cfg.MaxRetries,
		backoffPolicy: policyFromDelay(cfg.RetryDelay),
	}, nil
}

func (p *Bedrock) Name() string         { return "bedrock" }
func (p *Bedrock) SupportsTools() bool  { return true }
func (p *Bedrock) SupportsVision() bool { return true }

// Complete uses the non-streaming Converse API — ACC needs one decision
// per call, not a token stream, so there's no reason to pay for
// ConverseStream's event-channel bookkeeping here.
func (p *Bedrock) Complete(ctx context.Context, req decider.Request) (*decider.Response, error) {
	content := []types.ContentBlock{&types.ContentBlockMemberText{Value: req.UserPrompt}}
	if len(req.Image) > 0 {
		content = append(content, &types.ContentBlockMemberImage{
			Value: types.ImageBlock{
				Format: types.ImageFormatJpeg,
				Source: &types.ImageSourceMemberBytes{Value: req.Image},
			},
		})
	}

	converseReq := &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.model),
		Messages: []types.Message{
			{Role: types.ConversationRoleUser, Content: content},
		},
	}
	if req.SystemPrompt != "" {
		converseReq.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: req.SystemPrompt}}
	}
	if req.MaxTokens > 0 {
		// #nosec G115 -- MaxTokens is always a small positive step budget
		converseReq.InferenceConfig = &types.InferenceConfiguration{MaxTokens: aws.Int32(int32(req.MaxTokens))}
	}
	if len(req.Tools) > 0 {
		converseReq.ToolConfig = p.convertTools(req.Tools)
	}

	var out *bedrockruntime.ConverseOutput
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff.ComputeBackoff(p.backoffPolicy, attempt)):
			}
		}
		out, lastErr = p.client.Converse(ctx, converseReq)
		if lastErr == nil {
			break
		}
		if !isRetryableBedrockError(lastErr) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	return p.convertResponse(out)
}

func (p *Bedrock) convertTools(tools []decision.ToolDefinition) *types.ToolConfiguration {
	specs := make([]types.Tool, 0, len(tools))
	for _, t := range tools {
		var schemaMap map[string]any
		if err := json.Unmarshal(t.Schema, &schemaMap); err != nil {
			schemaMap = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		specs = append(specs, &types.ToolMemberToolSpec{
			Value: types.ToolSpecification{
				Name:        aws.String(t.Name),
				Description: aws.String(t.Description),
				InputSchema: &types.ToolInputSchemaMemberJson{Value: document.NewLazyDocument(schemaMap)},
			},
		})
	}
	return &types.ToolConfiguration{Tools: specs}
}

func (p *Bedrock) convertResponse(out *bedrockruntime.ConverseOutput) (*decider.Response, error) {
	msgOutput, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("bedrock: unexpected output shape")
	}

	resp := &decider.Response{}
	var text strings.Builder
	for _, block := range msgOutput.Value.Content {
		switch b := block.(type) {
		case *types.ContentBlockMemberText:
			text.WriteString(b.Value)
		case *types.ContentBlockMemberToolUse:
			var inputDoc json.RawMessage
			if err := b.Value.Input.UnmarshalSmithyDocument(&inputDoc); err != nil {
				inputDoc = json.RawMessage("{}")
			}
			resp.ToolCalls = append(resp.ToolCalls, decision.ToolCall{
				ID:    aws.ToString(b.Value.ToolUseId),
				Name:  aws.ToString(b.Value.Name),
				Input: inputDoc,
			})
		}
	}
	resp.Text = text.String()
	return resp, nil
}

func isRetryableBedrockError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"throttling", "toomanyrequests", "serviceunavailable", "timeout", "500", "502", "503", "504"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
