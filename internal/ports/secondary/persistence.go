// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves all projects, newest first.
	List(ctx context.Context) ([]*ProjectRecord, error)

	// Update replaces the mutable fields of an existing project.
	Update(ctx context.Context, project *ProjectRecord) error

	// DeleteCascade removes a project with its scenarios, executions and bug
	// reports in one transaction. Deleting a missing project is not an error.
	DeleteCascade(ctx context.Context, id string) error

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)

	// Exists checks if a project exists.
	Exists(ctx context.Context, id string) (bool, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID          string
	Name        string
	URL         string // Empty string means null
	Description string // Empty string means null
	CreatedAt   string
	UpdatedAt   string
}

// ScenarioRepository defines the secondary port for test scenario persistence.
type ScenarioRepository interface {
	// Create persists a new scenario.
	Create(ctx context.Context, scenario *ScenarioRecord) error

	// CreateBatch persists scenarios in one transaction, assigning each its
	// ID. Nothing is saved if any insert fails.
	CreateBatch(ctx context.Context, scenarios []*ScenarioRecord) error

	// GetByID retrieves a scenario by its ID.
	GetByID(ctx context.Context, id string) (*ScenarioRecord, error)

	// List retrieves scenarios matching the given filters, newest first.
	List(ctx context.Context, filters ScenarioFilters) ([]*ScenarioRecord, error)

	// Update replaces title, description, steps, priority and status.
	Update(ctx context.Context, scenario *ScenarioRecord) error

	// DeleteCascade removes a scenario, its executions and their bug reports
	// in one transaction. Deleting a missing scenario is not an error.
	DeleteCascade(ctx context.Context, id string) error

	// GetNextID returns the next available scenario ID.
	GetNextID(ctx context.Context) (string, error)

	// ProjectExists checks if a project exists (for validation).
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

// ScenarioRecord represents a test scenario as stored in persistence.
type ScenarioRecord struct {
	ID          string
	ProjectID   string
	Title       string
	Description string   // Empty string means null
	Steps       []string // Stored as a JSON array
	Priority    string   // critical, high, medium, low
	Status      string   // draft, active, archived
	CreatedByAI bool
	CreatedAt   string
	UpdatedAt   string
}

// ScenarioFilters contains filter options for querying scenarios.
type ScenarioFilters struct {
	ProjectID string
	Status    string
	Priority  string
}

// ExecutionRepository defines the secondary port for test execution persistence.
// Executions are immutable once recorded.
type ExecutionRepository interface {
	// Create persists a new execution.
	Create(ctx context.Context, execution *ExecutionRecord) error

	// GetByID retrieves an execution by its ID.
	GetByID(ctx context.Context, id string) (*ExecutionRecord, error)

	// ListByScenario retrieves a scenario's executions, newest first.
	ListByScenario(ctx context.Context, scenarioID string) ([]*ExecutionRecord, error)

	// ListFailedByProject retrieves failed executions of a project's scenarios
	// paired with their scenario, newest failure first.
	ListFailedByProject(ctx context.Context, projectID string) ([]*FailedExecutionRecord, error)

	// GetNextID returns the next available execution ID.
	GetNextID(ctx context.Context) (string, error)

	// ScenarioExists checks if a scenario exists (for validation).
	ScenarioExists(ctx context.Context, scenarioID string) (bool, error)
}

// ExecutionRecord represents a test execution as stored in persistence.
type ExecutionRecord struct {
	ID         string
	ScenarioID string
	Status     string // pass, fail, blocked, skipped
	Notes      string // Empty string means null
	ExecutedAt string // Empty on create means now
}

// FailedExecutionRecord pairs a failed execution with its scenario.
type FailedExecutionRecord struct {
	Scenario  *ScenarioRecord
	Execution *ExecutionRecord
}

// BugReportRepository defines the secondary port for bug report persistence.
type BugReportRepository interface {
	// Create persists a new bug report.
	Create(ctx context.Context, bug *BugReportRecord) error

	// GetByID retrieves a bug report by its ID.
	GetByID(ctx context.Context, id string) (*BugReportRecord, error)

	// List retrieves bug reports matching the given filters, newest first.
	List(ctx context.Context, filters BugReportFilters) ([]*BugReportRecord, error)

	// SetExternalIssue records the tracker issue a bug report was filed as.
	SetExternalIssue(ctx context.Context, id, issueKey, issueURL string) error

	// GetNextID returns the next available bug report ID.
	GetNextID(ctx context.Context) (string, error)
}

// BugReportRecord represents a bug report as stored in persistence.
// ScenarioID, ScenarioTitle and ProjectID are joined on read.
type BugReportRecord struct {
	ID               string
	ExecutionID      string
	Title            string
	Severity         string // critical, high, medium, low
	Description      string
	StepsToReproduce string
	ExpectedResult   string
	ActualResult     string
	AIGenerated      bool
	ExternalIssueKey string // Empty string means not filed
	ExternalIssueURL string
	FiledAt          string
	CreatedAt        string

	ScenarioID    string
	ScenarioTitle string
	ProjectID     string
}

// BugReportFilters contains filter options for querying bug reports.
type BugReportFilters struct {
	ProjectID string
	Severity  string
}

// StatsRepository computes aggregate counts across the store.
type StatsRepository interface {
	// Counts returns totals across all projects.
	Counts(ctx context.Context) (*CountsRecord, error)

	// ProjectCounts returns scenario and per-status execution counts for one project.
	ProjectCounts(ctx context.Context, projectID string) (*ProjectCountsRecord, error)
}

// CountsRecord holds store-wide totals.
type CountsRecord struct {
	Projects   int
	Scenarios  int
	BugReports int
	Executions int
	Passed     int
}

// ProjectCountsRecord holds the totals for a single project.
type ProjectCountsRecord struct {
	Scenarios          int
	ExecutionsByStatus map[string]int
}

// AuditLogRepository defines the secondary port for audit log persistence.
type AuditLogRepository interface {
	// Create persists a new audit log entry.
	Create(ctx context.Context, entry *AuditLogRecord) error

	// List retrieves entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// GetNextID returns the next available audit log ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditLogRecord represents an audit log entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	Actor      string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // create, update, delete
	FieldName  string // Empty string means null
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  string
}

// AuditLogFilters contains filter options for querying the audit log.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	Limit      int
}
