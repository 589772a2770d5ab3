package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	ts := now()
	err := insertWithID(ctx, r.db, "projects", "PROJ-", project.ID,
		"INSERT INTO projects (id, name, url, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		project.ID, project.Name, nullString(project.URL), nullString(project.Description), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, url, description, created_at, updated_at FROM projects WHERE id = ?",
		id,
	)
	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("project", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return record, nil
}

// List retrieves all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, url, description, created_at, updated_at FROM projects ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*secondary.ProjectRecord{}
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}
	return projects, rows.Err()
}

// Update replaces name, url and description.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, url = ?, description = ?, updated_at = ? WHERE id = ?",
		project.Name, nullString(project.URL), nullString(project.Description), now(), project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.NotFound("project", project.ID)
	}
	return nil
}

// DeleteCascade removes the project and everything beneath it in one transaction.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []struct{ what, query string }{
		{"bug reports", `DELETE FROM bug_reports WHERE execution_id IN (
			SELECT e.id FROM test_executions e JOIN test_scenarios s ON e.scenario_id = s.id WHERE s.project_id = ?)`},
		{"executions", `DELETE FROM test_executions WHERE scenario_id IN (
			SELECT id FROM test_scenarios WHERE project_id = ?)`},
		{"scenarios", "DELETE FROM test_scenarios WHERE project_id = ?"},
		{"project", "DELETE FROM projects WHERE id = ?"},
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", stmt.what, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project delete: %w", err)
	}
	return nil
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, r.db, "projects", "PROJ-")
}

// Exists checks if a project exists.
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, "projects", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*secondary.ProjectRecord, error) {
	var (
		url, description     sql.NullString
		createdAt, updatedAt time.Time
	)
	record := &secondary.ProjectRecord{}
	if err := s.Scan(&record.ID, &record.Name, &url, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.URL = url.String
	record.Description = description.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
