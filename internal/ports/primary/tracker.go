package primary

import "context"

// TrackerService defines the primary port for the external issue tracker.
type TrackerService interface {
	// TestConnection checks the tracker configuration.
	TestConnection(ctx context.Context) (*TrackerStatus, error)

	// FileIssue files a bug report in the tracker. A report that was already
	// filed is not filed again unless Force is set.
	FileIssue(ctx context.Context, req FileIssueRequest) (*FileIssueResult, error)
}

// FileIssueRequest contains parameters for filing a bug report.
type FileIssueRequest struct {
	BugReportID string
	Force       bool
}

// TrackerStatus is the result of a connection check.
type TrackerStatus struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OfflineMode bool   `json:"offline_mode"`
}

// FileIssueResult is the outcome of filing a bug report.
type FileIssueResult struct {
	IssueKey     string `json:"issue_key"`
	IssueURL     string `json:"issue_url"`
	Message      string `json:"message"`
	Simulated    bool   `json:"simulated"`
	AlreadyFiled bool   `json:"already_filed"`
}
