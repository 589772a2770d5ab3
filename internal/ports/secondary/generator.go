package secondary

import "context"

// TextGenerator sends a single prompt to a language model and returns the
// raw response text. The text is untrusted.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ScenarioGenerator drafts test scenarios for a project.
type ScenarioGenerator interface {
	// GenerateScenarios returns at most count drafts. An empty result is not an error.
	GenerateScenarios(ctx context.Context, brief ProjectBrief, count int) ([]ScenarioDraft, error)
}

// BugReportGenerator drafts a bug report for a failed execution.
type BugReportGenerator interface {
	DraftBugReport(ctx context.Context, brief FailureBrief) (*BugReportDraft, error)
}

// ProjectBrief is the project context handed to a scenario generator.
type ProjectBrief struct {
	Name        string
	URL         string
	Description string
}

// FailureBrief is the failure context handed to a bug report generator.
type FailureBrief struct {
	ScenarioTitle string
	Steps         string // Steps joined one per line
	Notes         string
}

// ScenarioDraft is a proposed scenario, not yet persisted.
type ScenarioDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Priority    string   `json:"priority"`
}

// BugReportDraft is a proposed bug report, not yet persisted.
type BugReportDraft struct {
	Title            string `json:"title"`
	Severity         string `json:"severity"`
	Description      string `json:"description"`
	StepsToReproduce string `json:"steps_to_reproduce"`
	ExpectedResult   string `json:"expected_result"`
	ActualResult     string `json:"actual_result"`
}
