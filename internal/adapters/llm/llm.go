// Package llm adapts hosted language models to the secondary.TextGenerator port.
package llm

import (
	"fmt"
	"log/slog"

	"github.com/example/smartqa/internal/config"
	"github.com/example/smartqa/internal/ports/secondary"
)

// Default models per provider when none is configured.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// New returns the TextGenerator for cfg.Provider, or nil for the mock provider.
func New(cfg config.AIConfig, logger *slog.Logger) (secondary.TextGenerator, error) {
	switch cfg.Provider {
	case config.ProviderMock, "":
		return nil, nil
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for provider %s", cfg.Provider)
		}
		model := cfg.Model
		if model == "" {
			model = DefaultAnthropicModel
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, model, cfg.BaseURL, logger), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %s", cfg.Provider)
		}
		model := cfg.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, model, cfg.BaseURL, logger), nil
	}
	return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
}
