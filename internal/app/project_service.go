package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	coreproject "github.com/example/smartqa/internal/core/project"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	scenarioRepo secondary.ScenarioRepository
	logWriter    secondary.LogWriter
	logger       *slog.Logger
}

// NewProjectService creates a new ProjectService with injected dependencies.
// logWriter is optional - if nil, no audit logging is performed.
func NewProjectService(
	projectRepo secondary.ProjectRepository,
	scenarioRepo secondary.ScenarioRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo:  projectRepo,
		scenarioRepo: scenarioRepo,
		logWriter:    logWriter,
		logger:       logger,
	}
}

// CreateProject creates a new project.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if result := coreproject.CanCreateProject(coreproject.CreateContext{Name: name, URL: url}); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:          nextID,
		Name:        name,
		URL:         url,
		Description: req.Description,
	}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "project", nextID) })
	s.logger.Debug("project created", "project_id", nextID)

	return s.GetProject(ctx, nextID)
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// ListProjects lists all projects, newest first.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// UpdateProject replaces the given fields of a project.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	current, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		updated.URL = strings.TrimSpace(*req.URL)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}

	if result := coreproject.CanCreateProject(coreproject.CreateContext{Name: updated.Name, URL: updated.URL}); !result.Allowed {
		return nil, result.Error()
	}

	if err := s.projectRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	writeChanges(ctx, s.logWriter, s.logger, "project", req.ProjectID, []fieldChange{
		{"name", current.Name, updated.Name},
		{"url", current.URL, updated.URL},
		{"description", current.Description, updated.Description},
	})
	s.logger.Debug("project updated", "project_id", req.ProjectID)

	return s.GetProject(ctx, req.ProjectID)
}

// DeleteProject deletes a project. Projects with scenarios need Force, which
// removes every scenario, execution and bug report beneath the project.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, req primary.DeleteProjectRequest) error {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return err
	}

	scenarios, err := s.scenarioRepo.List(ctx, secondary.ScenarioFilters{ProjectID: req.ProjectID})
	if err != nil {
		return fmt.Errorf("failed to count project scenarios: %w", err)
	}

	guardCtx := coreproject.DeleteContext{
		ProjectID:     req.ProjectID,
		ScenarioCount: len(scenarios),
		ForceDelete:   req.Force,
	}
	if result := coreproject.CanDeleteProject(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.projectRepo.DeleteCascade(ctx, req.ProjectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogDelete(ctx, "project", req.ProjectID) })
	s.logger.Debug("project deleted", "project_id", req.ProjectID, "scenarios", len(scenarios))
	return nil
}

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:          r.ID,
		Name:        r.Name,
		URL:         r.URL,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface.
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
