package primary

import "context"

// ExecutionService defines the primary port for recording test runs.
// Executions cannot be updated or deleted directly.
type ExecutionService interface {
	// RecordExecution records the outcome of running a scenario.
	RecordExecution(ctx context.Context, req RecordExecutionRequest) (*Execution, error)

	// GetExecution retrieves an execution by ID.
	GetExecution(ctx context.Context, executionID string) (*Execution, error)

	// ListExecutions lists a scenario's executions, newest first.
	ListExecutions(ctx context.Context, scenarioID string) ([]*Execution, error)

	// ListFailedExecutions lists a project's failed executions with their
	// scenarios, newest failure first. An empty list is not an error.
	ListFailedExecutions(ctx context.Context, projectID string) ([]*FailedExecution, error)
}

// RecordExecutionRequest contains parameters for recording an execution.
type RecordExecutionRequest struct {
	ScenarioID string
	Status     string
	Notes      string
	ExecutedAt string // RFC3339; empty means now
}

// Execution represents a test execution at the port boundary.
type Execution struct {
	ID         string `json:"id"`
	ScenarioID string `json:"scenario_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	ExecutedAt string `json:"executed_at"`
}

// FailedExecution pairs a failed execution with its scenario. These are the
// executions eligible for a bug report.
type FailedExecution struct {
	Scenario  *Scenario  `json:"scenario"`
	Execution *Execution `json:"execution"`
}
