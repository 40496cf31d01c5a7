package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Client using the Anthropic Messages API.
type AnthropicClient struct {
	client  sdk.Client
	modelID string
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(apiKey, modelID string) (*AnthropicClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: anthropic api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "claude-haiku-4-5-20251001"
	}
	return &AnthropicClient{
		client:  sdk.NewClient(option.WithAPIKey(apiKey)),
		modelID: modelID,
	}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, req Request) (Response, error) {
	modelID := strings.TrimSpace(req.Model)
	if modelID == "" {
		modelID = c.modelID
	}

	system := make([]string, 0, len(req.System))
	system = append(system, req.System...)

	messages := make([]sdk.MessageParam, 0, len(req.Messages))
	for _, msg := range req.Messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		switch msg.Role {
		case RoleSystem:
			system = append(system, content)
		case RoleAssistant:
			messages = append(messages, sdk.NewAssistantMessage(sdk.NewTextBlock(content)))
		default:
			messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(content)))
		}
	}
	if len(messages) == 0 {
		return Response{}, errors.New("llm: anthropic requires at least one message")
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(modelID),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if systemText := strings.TrimSpace(strings.Join(system, "\n\n")); systemText != "" {
		params.System = []sdk.TextBlockParam{{Text: systemText}}
	}
	if req.Temperature >= 0 {
		params.Temperature = sdk.Float(float64(req.Temperature))
	}
	if req.TopP > 0 {
		params.TopP = sdk.Float(float64(req.TopP))
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("llm: anthropic completion failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return Response{}, errors.New("llm: anthropic returned empty content")
	}

	return Response{
		Text:       strings.TrimSpace(sb.String()),
		StopReason: string(msg.StopReason),
		Usage: Usage{
			InputTokens:  int32(msg.Usage.InputTokens),
			OutputTokens: int32(msg.Usage.OutputTokens),
			TotalTokens:  int32(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
