package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	corescenario "github.com/example/smartqa/internal/core/scenario"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ScenarioServiceImpl implements the ScenarioService interface.
type ScenarioServiceImpl struct {
	scenarioRepo secondary.ScenarioRepository
	logWriter    secondary.LogWriter
	logger       *slog.Logger
}

// NewScenarioService creates a new ScenarioService with injected dependencies.
// logWriter is optional - if nil, no audit logging is performed.
func NewScenarioService(
	scenarioRepo secondary.ScenarioRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *ScenarioServiceImpl {
	return &ScenarioServiceImpl{
		scenarioRepo: scenarioRepo,
		logWriter:    logWriter,
		logger:       logger,
	}
}

// CreateScenario creates a scenario. Steps are stored as given.
func (s *ScenarioServiceImpl) CreateScenario(ctx context.Context, req primary.CreateScenarioRequest) (*primary.Scenario, error) {
	record, err := s.newRecord(ctx, req)
	if err != nil {
		return nil, err
	}

	nextID, err := s.scenarioRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scenario ID: %w", err)
	}
	record.ID = nextID
	if err := s.scenarioRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "scenario", nextID) })
	s.logger.Debug("scenario created", "scenario_id", nextID, "project_id", req.ProjectID, "ai", req.CreatedByAI)

	return s.GetScenario(ctx, nextID)
}

// CreateScenarios creates every scenario or none. All requests pass the
// guard before anything is written.
func (s *ScenarioServiceImpl) CreateScenarios(ctx context.Context, reqs []primary.CreateScenarioRequest) ([]*primary.Scenario, error) {
	records := make([]*secondary.ScenarioRecord, len(reqs))
	for i, req := range reqs {
		record, err := s.newRecord(ctx, req)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	if err := s.scenarioRepo.CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to create scenarios: %w", err)
	}

	created := make([]*primary.Scenario, 0, len(records))
	for _, record := range records {
		id := record.ID
		writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "scenario", id) })
		scenario, err := s.GetScenario(ctx, id)
		if err != nil {
			return nil, err
		}
		created = append(created, scenario)
	}
	s.logger.Debug("scenarios created", "count", len(created))
	return created, nil
}

// newRecord checks the create guard and applies defaults. The ID is left empty.
func (s *ScenarioServiceImpl) newRecord(ctx context.Context, req primary.CreateScenarioRequest) (*secondary.ScenarioRecord, error) {
	projectExists, err := s.scenarioRepo.ProjectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}

	title := strings.TrimSpace(req.Title)
	guardCtx := corescenario.CreateContext{
		ProjectID:     req.ProjectID,
		ProjectExists: projectExists,
		Title:         title,
		Priority:      req.Priority,
		Status:        req.Status,
	}
	if result := corescenario.CanCreateScenario(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	return &secondary.ScenarioRecord{
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: req.Description,
		Steps:       req.Steps,
		Priority:    orDefault(req.Priority, corescenario.DefaultPriority),
		Status:      orDefault(req.Status, corescenario.DefaultStatus),
		CreatedByAI: req.CreatedByAI,
	}, nil
}

// GetScenario retrieves a scenario by ID.
func (s *ScenarioServiceImpl) GetScenario(ctx context.Context, scenarioID string) (*primary.Scenario, error) {
	record, err := s.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return recordToScenario(record), nil
}

// ListScenarios lists scenarios, newest first.
func (s *ScenarioServiceImpl) ListScenarios(ctx context.Context, filters primary.ScenarioFilters) ([]*primary.Scenario, error) {
	records, err := s.scenarioRepo.List(ctx, secondary.ScenarioFilters(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]*primary.Scenario, len(records))
	for i, r := range records {
		scenarios[i] = recordToScenario(r)
	}
	return scenarios, nil
}

// UpdateScenario replaces the given fields. Steps are trimmed, blank steps
// dropped, and at least one must remain.
func (s *ScenarioServiceImpl) UpdateScenario(ctx context.Context, req primary.UpdateScenarioRequest) (*primary.Scenario, error) {
	current, err := s.scenarioRepo.GetByID(ctx, req.ScenarioID)
	if err != nil {
		return nil, err
	}

	updated := *current
	f := req.Fields
	if f.Title != nil {
		updated.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		updated.Description = *f.Description
	}
	if f.Priority != nil {
		updated.Priority = *f.Priority
	}
	if f.Status != nil {
		updated.Status = *f.Status
	}
	if req.Steps != nil {
		steps, err := corescenario.NormalizeSteps(req.Steps)
		if err != nil {
			return nil, err
		}
		updated.Steps = steps
	}

	guardCtx := corescenario.UpdateContext{
		ScenarioID: req.ScenarioID,
		Title:      updated.Title,
		Priority:   updated.Priority,
		Status:     updated.Status,
		Steps:      updated.Steps,
	}
	if result := corescenario.CanUpdateScenario(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	if err := s.scenarioRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update scenario: %w", err)
	}
	writeChanges(ctx, s.logWriter, s.logger, "scenario", req.ScenarioID, []fieldChange{
		{"title", current.Title, updated.Title},
		{"description", current.Description, updated.Description},
		{"steps", strings.Join(current.Steps, "\n"), strings.Join(updated.Steps, "\n")},
		{"priority", current.Priority, updated.Priority},
		{"status", current.Status, updated.Status},
	})
	s.logger.Debug("scenario updated", "scenario_id", req.ScenarioID, "steps", len(updated.Steps))

	return s.GetScenario(ctx, req.ScenarioID)
}

// DeleteScenario removes a scenario with its executions and bug reports.
func (s *ScenarioServiceImpl) DeleteScenario(ctx context.Context, scenarioID string) error {
	if _, err := s.scenarioRepo.GetByID(ctx, scenarioID); err != nil {
		return err
	}
	if err := s.scenarioRepo.DeleteCascade(ctx, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogDelete(ctx, "scenario", scenarioID) })
	s.logger.Debug("scenario deleted", "scenario_id", scenarioID)
	return nil
}

// BeginEdit starts an edit session from the scenario's current steps.
func (s *ScenarioServiceImpl) BeginEdit(ctx context.Context, scenarioID string) (*corescenario.EditSession, error) {
	record, err := s.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return corescenario.NewEditSession(uuid.NewString(), record.ID, record.Steps), nil
}

// SaveEdit persists the session's steps with the given fields and closes the
// session. A failed save leaves the session open for correction.
func (s *ScenarioServiceImpl) SaveEdit(ctx context.Context, session *corescenario.EditSession, fields primary.ScenarioFields) (*primary.Scenario, error) {
	if session == nil || session.Closed() {
		return nil, corescenario.ErrSessionClosed
	}

	scenario, err := s.UpdateScenario(ctx, primary.UpdateScenarioRequest{
		ScenarioID: session.ScenarioID,
		Fields:     fields,
		Steps:      session.Steps(),
	})
	if err != nil {
		return nil, err
	}
	session.Close()
	return scenario, nil
}

// DiscardEdit closes the session without saving.
func (s *ScenarioServiceImpl) DiscardEdit(session *corescenario.EditSession) {
	if session != nil {
		session.Close()
	}
}

func recordToScenario(r *secondary.ScenarioRecord) *primary.Scenario {
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}
	return &primary.Scenario{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Steps:       steps,
		Priority:    r.Priority,
		Status:      r.Status,
		CreatedByAI: r.CreatedByAI,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Ensure ScenarioServiceImpl implements the interface.
var _ primary.ScenarioService = (*ScenarioServiceImpl)(nil)
