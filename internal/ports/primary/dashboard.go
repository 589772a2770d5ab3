package primary

import "context"

// DashboardService defines the primary port for derived statistics.
// Values are recomputed on every call.
type DashboardService interface {
	// ComputeStats returns store-wide totals and the execution success rate.
	ComputeStats(ctx context.Context) (*Stats, error)

	// ProjectSummary returns scenario and per-status execution counts for a project.
	ProjectSummary(ctx context.Context, projectID string) (*ProjectSummary, error)
}

// Stats holds the dashboard totals.
type Stats struct {
	ProjectCount  int     `json:"project_count"`
	ScenarioCount int     `json:"scenario_count"`
	BugCount      int     `json:"bug_count"`
	SuccessRate   float64 `json:"success_rate"`
}

// ProjectSummary holds the totals for a single project.
type ProjectSummary struct {
	Project            *Project       `json:"project"`
	ScenarioCount      int            `json:"scenario_count"`
	ExecutionsByStatus map[string]int `json:"executions_by_status"`
	SuccessRate        float64        `json:"success_rate"`
}
