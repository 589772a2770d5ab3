package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/smartqa/internal/ports/secondary"
)

// StatsRepository implements secondary.StatsRepository with SQLite.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new SQLite stats repository.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts returns totals across all projects.
func (r *StatsRepository) Counts(ctx context.Context) (*secondary.CountsRecord, error) {
	counts := &secondary.CountsRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM test_scenarios),
			(SELECT COUNT(*) FROM bug_reports),
			(SELECT COUNT(*) FROM test_executions),
			(SELECT COUNT(*) FROM test_executions WHERE status = 'pass')`,
	).Scan(&counts.Projects, &counts.Scenarios, &counts.BugReports, &counts.Executions, &counts.Passed)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return counts, nil
}

// ProjectCounts returns scenario and per-status execution counts for one project.
func (r *StatsRepository) ProjectCounts(ctx context.Context, projectID string) (*secondary.ProjectCountsRecord, error) {
	counts := &secondary.ProjectCountsRecord{ExecutionsByStatus: map[string]int{}}

	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM test_scenarios WHERE project_id = ?", projectID,
	).Scan(&counts.Scenarios); err != nil {
		return nil, fmt.Errorf("failed to count scenarios: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT e.status, COUNT(*)
		FROM test_executions e
		JOIN test_scenarios s ON e.scenario_id = s.id
		WHERE s.project_id = ?
		GROUP BY e.status`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count executions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan execution count: %w", err)
		}
		counts.ExecutionsByStatus[status] = n
	}
	return counts, rows.Err()
}

// Ensure StatsRepository implements the interface
var _ secondary.StatsRepository = (*StatsRepository)(nil)
