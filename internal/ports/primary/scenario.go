package primary

import (
	"context"

	"github.com/example/smartqa/internal/core/scenario"
)

// ScenarioService defines the primary port for test scenario operations.
type ScenarioService interface {
	// CreateScenario creates a scenario. Steps are stored as given.
	CreateScenario(ctx context.Context, req CreateScenarioRequest) (*Scenario, error)

	// CreateScenarios creates every scenario or none.
	CreateScenarios(ctx context.Context, reqs []CreateScenarioRequest) ([]*Scenario, error)

	// GetScenario retrieves a scenario by ID.
	GetScenario(ctx context.Context, scenarioID string) (*Scenario, error)

	// ListScenarios lists scenarios, newest first.
	ListScenarios(ctx context.Context, filters ScenarioFilters) ([]*Scenario, error)

	// UpdateScenario replaces the given fields. Steps are normalized and at
	// least one must remain.
	UpdateScenario(ctx context.Context, req UpdateScenarioRequest) (*Scenario, error)

	// DeleteScenario removes a scenario with its executions and bug reports.
	DeleteScenario(ctx context.Context, scenarioID string) error

	// BeginEdit starts an edit session on a scenario's steps.
	BeginEdit(ctx context.Context, scenarioID string) (*scenario.EditSession, error)

	// SaveEdit persists the session's steps together with the given fields
	// and closes the session.
	SaveEdit(ctx context.Context, session *scenario.EditSession, fields ScenarioFields) (*Scenario, error)

	// DiscardEdit closes the session without saving.
	DiscardEdit(session *scenario.EditSession)
}

// CreateScenarioRequest contains parameters for creating a scenario.
type CreateScenarioRequest struct {
	ProjectID   string
	Title       string
	Description string
	Steps       []string
	Priority    string
	Status      string
	CreatedByAI bool
}

// ScenarioFields are the optional non-step fields of an update.
// Nil fields are left unchanged.
type ScenarioFields struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}

// UpdateScenarioRequest contains parameters for updating a scenario.
// Nil Steps leaves the steps unchanged.
type UpdateScenarioRequest struct {
	ScenarioID string
	Fields     ScenarioFields
	Steps      []string
}

// ScenarioFilters contains filter options for listing scenarios.
type ScenarioFilters struct {
	ProjectID string
	Status    string
	Priority  string
}

// Scenario represents a test scenario at the port boundary.
type Scenario struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	CreatedByAI bool     `json:"created_by_ai"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
