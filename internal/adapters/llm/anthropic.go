package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/example/smartqa/internal/ports/secondary"
)

// AnthropicClient implements secondary.TextGenerator with the Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewAnthropicClient creates a client. An empty baseURL uses the public API.
func NewAnthropicClient(apiKey, model, baseURL string, logger *slog.Logger) *AnthropicClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
		logger: logger,
	}
}

// Complete sends prompt as a single user message and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		c.logger.Warn("anthropic request failed", "model", c.model, "error", err)
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic response contained no text")
}

var _ secondary.TextGenerator = (*AnthropicClient)(nil)
