package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
	corescenario "github.com/example/smartqa/internal/core/scenario"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// GenerationServiceImpl implements the GenerationService interface.
type GenerationServiceImpl struct {
	projectRepo     secondary.ProjectRepository
	generator       secondary.ScenarioGenerator
	scenarioService primary.ScenarioService
	logger          *slog.Logger
}

// NewGenerationService creates a new GenerationService with injected dependencies.
func NewGenerationService(
	projectRepo secondary.ProjectRepository,
	generator secondary.ScenarioGenerator,
	scenarioService primary.ScenarioService,
	logger *slog.Logger,
) *GenerationServiceImpl {
	return &GenerationServiceImpl{
		projectRepo:     projectRepo,
		generator:       generator,
		scenarioService: scenarioService,
		logger:          logger,
	}
}

// GenerateScenarios drafts up to count scenarios for a project. Nothing is saved.
func (s *GenerationServiceImpl) GenerateScenarios(ctx context.Context, projectID string, count int) ([]primary.ScenarioDraft, error) {
	if count < 1 {
		return nil, apperrors.Validation("count must be at least 1, got %d", count)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateScenarios(ctx, secondary.ProjectBrief{
		Name:        project.Name,
		URL:         project.URL,
		Description: project.Description,
	}, count)
	if err != nil {
		return nil, err
	}
	if len(generated) == 0 {
		s.logger.Warn("generator returned zero usable scenarios", "project_id", projectID, "requested", count)
	}

	drafts := make([]primary.ScenarioDraft, len(generated))
	for i, g := range generated {
		drafts[i] = primary.ScenarioDraft(g)
	}
	return drafts, nil
}

// AcceptScenarioDrafts saves one scenario per draft, marked as AI-created.
// Every draft is validated first, then all are saved in one transaction.
func (s *GenerationServiceImpl) AcceptScenarioDrafts(ctx context.Context, projectID string, drafts []primary.ScenarioDraft) ([]*primary.Scenario, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("project", projectID)
	}

	requests := make([]primary.CreateScenarioRequest, len(drafts))
	for i, d := range drafts {
		steps, err := corescenario.NormalizeSteps(d.Steps)
		if err != nil {
			return nil, apperrors.Validation("draft %d (%s): %v", i+1, d.Title, err)
		}
		guardCtx := corescenario.CreateContext{
			ProjectID:     projectID,
			ProjectExists: exists,
			Title:         strings.TrimSpace(d.Title),
			Priority:      d.Priority,
		}
		if result := corescenario.CanCreateScenario(guardCtx); !result.Allowed {
			return nil, result.Error()
		}
		requests[i] = primary.CreateScenarioRequest{
			ProjectID:   projectID,
			Title:       d.Title,
			Description: d.Description,
			Steps:       steps,
			Priority:    d.Priority,
			CreatedByAI: true,
		}
	}

	saved, err := s.scenarioService.CreateScenarios(ctx, requests)
	if err != nil {
		return nil, err
	}
	s.logger.Info("accepted generated scenarios", "project_id", projectID, "count", len(saved))
	return saved, nil
}

// Ensure GenerationServiceImpl implements the interface.
var _ primary.GenerationService = (*GenerationServiceImpl)(nil)
