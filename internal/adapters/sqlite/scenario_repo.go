package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

const scenarioColumns = "id, project_id, title, description, steps, priority, status, created_by_ai, created_at, updated_at"

// ScenarioRepository implements secondary.ScenarioRepository with SQLite.
type ScenarioRepository struct {
	db *sql.DB
}

// NewScenarioRepository creates a new SQLite scenario repository.
func NewScenarioRepository(db *sql.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

// Create persists a new scenario. Steps are stored as given.
func (r *ScenarioRepository) Create(ctx context.Context, scenario *secondary.ScenarioRecord) error {
	args, err := scenarioInsertArgs(scenario)
	if err != nil {
		return err
	}
	if err := insertWithID(ctx, r.db, "test_scenarios", "SCN-", scenario.ID, insertScenarioSQL, args...); err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

// CreateBatch persists scenarios in one transaction, assigning each the next
// free ID. Nothing is saved if any insert fails.
func (r *ScenarioRepository) CreateBatch(ctx context.Context, scenarios []*secondary.ScenarioRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, scenario := range scenarios {
		id, err := nextID(ctx, tx, "test_scenarios", "SCN-")
		if err != nil {
			return err
		}
		scenario.ID = id
		args, err := scenarioInsertArgs(scenario)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertScenarioSQL, args...); err != nil {
			return fmt.Errorf("failed to create scenario %s: %w", id, err)
		}
		if err := recordID(ctx, tx, "test_scenarios", "SCN-", id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scenario batch: %w", err)
	}
	return nil
}

const insertScenarioSQL = "INSERT INTO test_scenarios (" + scenarioColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// scenarioInsertArgs applies the priority and status defaults.
func scenarioInsertArgs(scenario *secondary.ScenarioRecord) ([]any, error) {
	steps, err := encodeSteps(scenario.Steps)
	if err != nil {
		return nil, err
	}

	priority := "medium"
	if scenario.Priority != "" {
		priority = scenario.Priority
	}
	status := "active"
	if scenario.Status != "" {
		status = scenario.Status
	}

	ts := now()
	return []any{
		scenario.ID, scenario.ProjectID, scenario.Title, nullString(scenario.Description), steps,
		priority, status, scenario.CreatedByAI, ts, ts,
	}, nil
}

// GetByID retrieves a scenario by its ID.
func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*secondary.ScenarioRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+scenarioColumns+" FROM test_scenarios WHERE id = ?", id)
	record, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("scenario", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return record, nil
}

// List retrieves scenarios matching the given filters, newest first.
func (r *ScenarioRepository) List(ctx context.Context, filters secondary.ScenarioFilters) ([]*secondary.ScenarioRecord, error) {
	query := "SELECT " + scenarioColumns + " FROM test_scenarios WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := []*secondary.ScenarioRecord{}
	for rows.Next() {
		record, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, record)
	}
	return scenarios, rows.Err()
}

// Update replaces title, description, steps, priority and status.
func (r *ScenarioRepository) Update(ctx context.Context, scenario *secondary.ScenarioRecord) error {
	steps, err := encodeSteps(scenario.Steps)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE test_scenarios SET title = ?, description = ?, steps = ?, priority = ?, status = ?, updated_at = ? WHERE id = ?",
		scenario.Title, nullString(scenario.Description), steps, scenario.Priority, scenario.Status, now(), scenario.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.NotFound("scenario", scenario.ID)
	}
	return nil
}

// DeleteCascade removes the scenario, its executions and their bug reports.
func (r *ScenarioRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM bug_reports WHERE execution_id IN (SELECT id FROM test_executions WHERE scenario_id = ?)", id,
	); err != nil {
		return fmt.Errorf("failed to delete bug reports: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM test_executions WHERE scenario_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete executions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM test_scenarios WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scenario delete: %w", err)
	}
	return nil
}

// GetNextID returns the next available scenario ID.
func (r *ScenarioRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "test_scenarios", "SCN-")
}

// ProjectExists checks if a project exists (for validation).
func (r *ScenarioRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return exists(ctx, r.db, "projects", projectID)
}

func encodeSteps(steps []string) (string, error) {
	if steps == nil {
		steps = []string{}
	}
	data, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("failed to encode steps: %w", err)
	}
	return string(data), nil
}

func decodeSteps(raw string) ([]string, error) {
	steps := []string{}
	if raw == "" {
		return steps, nil
	}
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("failed to decode steps: %w", err)
	}
	return steps, nil
}

func scanScenario(s scanner) (*secondary.ScenarioRecord, error) {
	var (
		description          sql.NullString
		steps                string
		createdAt, updatedAt time.Time
	)
	record := &secondary.ScenarioRecord{}
	if err := s.Scan(&record.ID, &record.ProjectID, &record.Title, &description, &steps,
		&record.Priority, &record.Status, &record.CreatedByAI, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	decoded, err := decodeSteps(steps)
	if err != nil {
		return nil, err
	}
	record.Steps = decoded
	record.Description = description.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Ensure ScenarioRepository implements the interface
var _ secondary.ScenarioRepository = (*ScenarioRepository)(nil)
