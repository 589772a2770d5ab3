package primary

import "context"

// BugReportService defines the primary port for bug report operations.
// Bug reports cannot be updated or deleted directly.
type BugReportService interface {
	// CreateBugReport creates a bug report from a failed execution.
	CreateBugReport(ctx context.Context, req CreateBugReportRequest) (*BugReport, error)

	// GetBugReport retrieves a bug report by ID.
	GetBugReport(ctx context.Context, bugReportID string) (*BugReport, error)

	// ListBugReports lists bug reports, newest first.
	ListBugReports(ctx context.Context, filters BugReportFilters) ([]*BugReport, error)

	// DraftBugReport asks the configured generator for a draft. Nothing is saved.
	DraftBugReport(ctx context.Context, executionID string) (*BugReportDraft, error)

	// ExportBugReport renders a bug report as text or markdown.
	ExportBugReport(ctx context.Context, bugReportID, format string) (*ExportedBugReport, error)
}

// CreateBugReportRequest contains parameters for creating a bug report.
type CreateBugReportRequest struct {
	ExecutionID      string
	Title            string
	Severity         string
	Description      string
	StepsToReproduce string
	ExpectedResult   string
	ActualResult     string
	AIGenerated      bool
}

// BugReportFilters contains filter options for listing bug reports.
type BugReportFilters struct {
	ProjectID string
	Severity  string
}

// BugReport represents a bug report at the port boundary.
type BugReport struct {
	ID               string `json:"id"`
	ExecutionID      string `json:"execution_id"`
	ScenarioID       string `json:"scenario_id"`
	ScenarioTitle    string `json:"scenario_title"`
	ProjectID        string `json:"project_id"`
	Title            string `json:"title"`
	Severity         string `json:"severity"`
	Description      string `json:"description,omitempty"`
	StepsToReproduce string `json:"steps_to_reproduce,omitempty"`
	ExpectedResult   string `json:"expected_result,omitempty"`
	ActualResult     string `json:"actual_result,omitempty"`
	AIGenerated      bool   `json:"ai_generated"`
	ExternalIssueKey string `json:"external_issue_key,omitempty"`
	ExternalIssueURL string `json:"external_issue_url,omitempty"`
	FiledAt          string `json:"filed_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// BugReportDraft is a generated, unsaved bug report for an execution.
type BugReportDraft struct {
	ExecutionID      string `json:"execution_id"`
	Title            string `json:"title"`
	Severity         string `json:"severity"`
	Description      string `json:"description"`
	StepsToReproduce string `json:"steps_to_reproduce"`
	ExpectedResult   string `json:"expected_result"`
	ActualResult     string `json:"actual_result"`
}

// ExportedBugReport is a rendered bug report ready to be written to a file.
type ExportedBugReport struct {
	FileName    string
	ContentType string
	Content     string
}
