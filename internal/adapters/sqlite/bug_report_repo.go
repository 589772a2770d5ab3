package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

const bugReportSelect = `
	SELECT b.id, b.execution_id, b.title, b.severity, b.description, b.steps_to_reproduce,
	       b.expected_result, b.actual_result, b.ai_generated, b.external_issue_key,
	       b.external_issue_url, b.filed_at, b.created_at, s.id, s.title, s.project_id
	FROM bug_reports b
	JOIN test_executions e ON b.execution_id = e.id
	JOIN test_scenarios s ON e.scenario_id = s.id`

// BugReportRepository implements secondary.BugReportRepository with SQLite.
type BugReportRepository struct {
	db *sql.DB
}

// NewBugReportRepository creates a new SQLite bug report repository.
func NewBugReportRepository(db *sql.DB) *BugReportRepository {
	return &BugReportRepository{db: db}
}

// Create persists a new bug report.
func (r *BugReportRepository) Create(ctx context.Context, bug *secondary.BugReportRecord) error {
	severity := "medium"
	if bug.Severity != "" {
		severity = bug.Severity
	}

	err := insertWithID(ctx, r.db, "bug_reports", "BUG-", bug.ID,
		`INSERT INTO bug_reports (id, execution_id, title, severity, description, steps_to_reproduce,
		 expected_result, actual_result, ai_generated, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bug.ID, bug.ExecutionID, bug.Title, severity, nullString(bug.Description), nullString(bug.StepsToReproduce),
		nullString(bug.ExpectedResult), nullString(bug.ActualResult), bug.AIGenerated, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create bug report: %w", err)
	}
	return nil
}

// GetByID retrieves a bug report by its ID.
func (r *BugReportRepository) GetByID(ctx context.Context, id string) (*secondary.BugReportRecord, error) {
	row := r.db.QueryRowContext(ctx, bugReportSelect+" WHERE b.id = ?", id)
	record, err := scanBugReport(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("bug report", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bug report: %w", err)
	}
	return record, nil
}

// List retrieves bug reports matching the given filters, newest first.
func (r *BugReportRepository) List(ctx context.Context, filters secondary.BugReportFilters) ([]*secondary.BugReportRecord, error) {
	query := bugReportSelect + " WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND s.project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Severity != "" {
		query += " AND b.severity = ?"
		args = append(args, filters.Severity)
	}

	query += " ORDER BY b.created_at DESC, b.rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bug reports: %w", err)
	}
	defer rows.Close()

	bugs := []*secondary.BugReportRecord{}
	for rows.Next() {
		record, err := scanBugReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bug report: %w", err)
		}
		bugs = append(bugs, record)
	}
	return bugs, rows.Err()
}

// SetExternalIssue records the tracker issue and stamps filed_at.
func (r *BugReportRepository) SetExternalIssue(ctx context.Context, id, issueKey, issueURL string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bug_reports SET external_issue_key = ?, external_issue_url = ?, filed_at = ? WHERE id = ?",
		issueKey, nullString(issueURL), now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to record external issue: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.NotFound("bug report", id)
	}
	return nil
}

// GetNextID returns the next available bug report ID.
func (r *BugReportRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "bug_reports", "BUG-")
}

func scanBugReport(s scanner) (*secondary.BugReportRecord, error) {
	var (
		description, steps, expected, actual sql.NullString
		issueKey, issueURL                   sql.NullString
		filedAt                              sql.NullTime
		createdAt                            time.Time
	)
	record := &secondary.BugReportRecord{}
	if err := s.Scan(&record.ID, &record.ExecutionID, &record.Title, &record.Severity, &description, &steps,
		&expected, &actual, &record.AIGenerated, &issueKey, &issueURL, &filedAt, &createdAt,
		&record.ScenarioID, &record.ScenarioTitle, &record.ProjectID); err != nil {
		return nil, err
	}
	record.Description = description.String
	record.StepsToReproduce = steps.String
	record.ExpectedResult = expected.String
	record.ActualResult = actual.String
	record.ExternalIssueKey = issueKey.String
	record.ExternalIssueURL = issueURL.String
	record.FiledAt = formatNullTime(filedAt)
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// Ensure BugReportRepository implements the interface
var _ secondary.BugReportRepository = (*BugReportRepository)(nil)
