package secondary

import "context"

// IssueTracker files bug reports in an external tracker. Implementations
// report failures through the result values and never return errors.
type IssueTracker interface {
	// TestConnection checks credentials against the tracker.
	TestConnection(ctx context.Context) ConnectionResult

	// CreateIssue files a single issue.
	CreateIssue(ctx context.Context, req IssueRequest) IssueResult
}

// ConnectionResult is the outcome of a connection check.
type ConnectionResult struct {
	Success     bool
	Message     string
	OfflineMode bool
}

// IssueRequest carries the bug report fields sent to the tracker.
type IssueRequest struct {
	Title            string
	Description      string
	StepsToReproduce string
	ExpectedResult   string
	ActualResult     string
	Severity         string
	ProjectName      string
}

// IssueResult is the outcome of filing an issue. Simulated is set when the
// tracker ran in offline mode and nothing was created remotely.
type IssueResult struct {
	Success   bool
	IssueKey  string
	IssueURL  string
	Message   string
	Simulated bool
}
