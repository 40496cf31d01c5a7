package intake

import (
	"context"

	"github.com/wolfman30/lead-intake-ai/internal/llm"
)

// Low temperature biases the model toward literal, structurally faithful
// output, which the JSON repair step depends on.
const (
	completionTemperature = 0.2
	completionMaxTokens   = 1024
)

// GatewayError is the single failure type the pipeline sees from the
// completion service. Failure subtypes (timeout, auth, rate limit) are not
// distinguished beyond the message.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "completion gateway: " + e.Message
}

// Gateway is the boundary to the external completion service. It makes a
// single best-effort attempt per call; retrying is the provider chain's
// concern, not the pipeline's.
type Gateway struct {
	client    llm.Client
	maxTokens int32
}

// NewGateway wraps an LLM client. maxTokens <= 0 selects the default bound.
func NewGateway(client llm.Client, maxTokens int) *Gateway {
	if client == nil {
		panic("intake: llm client cannot be nil")
	}
	mt := int32(maxTokens)
	if mt <= 0 {
		mt = completionMaxTokens
	}
	return &Gateway{client: client, maxTokens: mt}
}

// Complete sends a system+user message pair to the completion service and
// returns the generated text. Any provider failure comes back as a
// *GatewayError.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", &GatewayError{Message: err.Error()}
	}
	return resp.Text, nil
}
