package generator

import (
	"context"
	"log/slog"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
	"github.com/example/smartqa/internal/templates"
)

// LLMScenarioGenerator drafts scenarios by prompting a language model.
type LLMScenarioGenerator struct {
	llm       secondary.TextGenerator
	maxTokens int
	logger    *slog.Logger
}

// NewLLMScenarioGenerator creates a model-backed scenario generator.
func NewLLMScenarioGenerator(llm secondary.TextGenerator, maxTokens int, logger *slog.Logger) *LLMScenarioGenerator {
	return &LLMScenarioGenerator{llm: llm, maxTokens: maxTokens, logger: logger}
}

// GenerateScenarios prompts for count scenarios and parses the reply.
// Drafts beyond count are dropped.
func (g *LLMScenarioGenerator) GenerateScenarios(ctx context.Context, brief secondary.ProjectBrief, count int) ([]secondary.ScenarioDraft, error) {
	prompt, err := templates.Render(templates.ScenariosPrompt, struct {
		secondary.ProjectBrief
		Count int
	}{brief, count})
	if err != nil {
		return nil, apperrors.Generation("failed to build prompt: %v", err)
	}

	text, err := g.llm.Complete(ctx, prompt, g.maxTokens)
	if err != nil {
		return nil, apperrors.Generation("scenario generation failed: %v", err)
	}

	drafts, err := ParseScenarios(text)
	if err != nil {
		g.logger.Warn("unusable scenario generation output", "error", err, "bytes", len(text))
		return nil, err
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts, nil
}

// LLMBugReportGenerator drafts bug reports by prompting a language model.
type LLMBugReportGenerator struct {
	llm       secondary.TextGenerator
	maxTokens int
	logger    *slog.Logger
}

// NewLLMBugReportGenerator creates a model-backed bug report generator.
func NewLLMBugReportGenerator(llm secondary.TextGenerator, maxTokens int, logger *slog.Logger) *LLMBugReportGenerator {
	return &LLMBugReportGenerator{llm: llm, maxTokens: maxTokens, logger: logger}
}

// DraftBugReport prompts for a bug report and parses the reply.
func (g *LLMBugReportGenerator) DraftBugReport(ctx context.Context, brief secondary.FailureBrief) (*secondary.BugReportDraft, error) {
	prompt, err := templates.Render(templates.BugReportPrompt, brief)
	if err != nil {
		return nil, apperrors.Generation("failed to build prompt: %v", err)
	}

	text, err := g.llm.Complete(ctx, prompt, g.maxTokens)
	if err != nil {
		return nil, apperrors.Generation("bug report generation failed: %v", err)
	}

	draft, err := ParseBugReport(text)
	if err != nil {
		g.logger.Warn("unusable bug report generation output", "error", err, "bytes", len(text))
		return nil, err
	}
	return draft, nil
}

var (
	_ secondary.ScenarioGenerator  = (*LLMScenarioGenerator)(nil)
	_ secondary.BugReportGenerator = (*LLMBugReportGenerator)(nil)
)
