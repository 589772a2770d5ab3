package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ExecutionRepository implements secondary.ExecutionRepository with SQLite.
type ExecutionRepository struct {
	db *sql.DB
}

// NewExecutionRepository creates a new SQLite execution repository.
func NewExecutionRepository(db *sql.DB) *ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// Create persists a new execution. An empty ExecutedAt means now.
func (r *ExecutionRepository) Create(ctx context.Context, execution *secondary.ExecutionRecord) error {
	executedAt := now()
	if execution.ExecutedAt != "" {
		parsed, err := time.Parse(time.RFC3339, execution.ExecutedAt)
		if err != nil {
			return fmt.Errorf("invalid executed_at %q: %w", execution.ExecutedAt, err)
		}
		executedAt = parsed.UTC()
	}

	err := insertWithID(ctx, r.db, "test_executions", "EXEC-", execution.ID,
		"INSERT INTO test_executions (id, scenario_id, status, executed_at, notes) VALUES (?, ?, ?, ?, ?)",
		execution.ID, execution.ScenarioID, execution.Status, executedAt, nullString(execution.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create execution: %w", err)
	}
	return nil
}

// GetByID retrieves an execution by its ID.
func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*secondary.ExecutionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, scenario_id, status, executed_at, notes FROM test_executions WHERE id = ?", id,
	)
	record, err := scanExecution(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("execution", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get execution: %w", err)
	}
	return record, nil
}

// ListByScenario retrieves a scenario's executions, newest first.
func (r *ExecutionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*secondary.ExecutionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, scenario_id, status, executed_at, notes FROM test_executions WHERE scenario_id = ? ORDER BY executed_at DESC, rowid DESC",
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	executions := []*secondary.ExecutionRecord{}
	for rows.Next() {
		record, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, record)
	}
	return executions, rows.Err()
}

// ListFailedByProject retrieves failed executions with their scenarios, newest failure first.
func (r *ExecutionRepository) ListFailedByProject(ctx context.Context, projectID string) ([]*secondary.FailedExecutionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.project_id, s.title, s.description, s.steps, s.priority, s.status, s.created_by_ai, s.created_at, s.updated_at,
		       e.id, e.scenario_id, e.status, e.executed_at, e.notes
		FROM test_executions e
		JOIN test_scenarios s ON e.scenario_id = s.id
		WHERE s.project_id = ? AND e.status = 'fail'
		ORDER BY e.executed_at DESC, e.rowid DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed executions: %w", err)
	}
	defer rows.Close()

	pairs := []*secondary.FailedExecutionRecord{}
	for rows.Next() {
		var (
			scnDescription, steps, notes sql.NullString
			scnCreated, scnUpdated       time.Time
			executedAt                   time.Time
		)
		scn := &secondary.ScenarioRecord{}
		exec := &secondary.ExecutionRecord{}
		if err := rows.Scan(
			&scn.ID, &scn.ProjectID, &scn.Title, &scnDescription, &steps, &scn.Priority, &scn.Status, &scn.CreatedByAI, &scnCreated, &scnUpdated,
			&exec.ID, &exec.ScenarioID, &exec.Status, &executedAt, &notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan failed execution: %w", err)
		}

		decoded, err := decodeSteps(steps.String)
		if err != nil {
			return nil, err
		}
		scn.Steps = decoded
		scn.Description = scnDescription.String
		scn.CreatedAt = formatTime(scnCreated)
		scn.UpdatedAt = formatTime(scnUpdated)
		exec.Notes = notes.String
		exec.ExecutedAt = formatTime(executedAt)

		pairs = append(pairs, &secondary.FailedExecutionRecord{Scenario: scn, Execution: exec})
	}
	return pairs, rows.Err()
}

// GetNextID returns the next available execution ID.
func (r *ExecutionRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "test_executions", "EXEC-")
}

// ScenarioExists checks if a scenario exists (for validation).
func (r *ExecutionRepository) ScenarioExists(ctx context.Context, scenarioID string) (bool, error) {
	return exists(ctx, r.db, "test_scenarios", scenarioID)
}

func scanExecution(s scanner) (*secondary.ExecutionRecord, error) {
	var (
		notes      sql.NullString
		executedAt time.Time
	)
	record := &secondary.ExecutionRecord{}
	if err := s.Scan(&record.ID, &record.ScenarioID, &record.Status, &executedAt, &notes); err != nil {
		return nil, err
	}
	record.Notes = notes.String
	record.ExecutedAt = formatTime(executedAt)
	return record, nil
}

// Ensure ExecutionRepository implements the interface
var _ secondary.ExecutionRepository = (*ExecutionRepository)(nil)
