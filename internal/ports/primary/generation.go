package primary

import "context"

// GenerationService defines the primary port for AI-assisted scenario drafting.
type GenerationService interface {
	// GenerateScenarios drafts up to count scenarios for a project. Nothing is
	// saved. An empty result is not an error.
	GenerateScenarios(ctx context.Context, projectID string, count int) ([]ScenarioDraft, error)

	// AcceptScenarioDrafts saves one scenario per draft, marked as AI-created.
	AcceptScenarioDrafts(ctx context.Context, projectID string, drafts []ScenarioDraft) ([]*Scenario, error)
}

// ScenarioDraft is a generated, unsaved scenario.
type ScenarioDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Priority    string   `json:"priority"`
}
