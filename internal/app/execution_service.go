package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/smartqa/internal/apperrors"
	coreexecution "github.com/example/smartqa/internal/core/execution"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// ExecutionServiceImpl implements the ExecutionService interface.
type ExecutionServiceImpl struct {
	executionRepo secondary.ExecutionRepository
	projectRepo   secondary.ProjectRepository
	logWriter     secondary.LogWriter
	logger        *slog.Logger
}

// NewExecutionService creates a new ExecutionService with injected dependencies.
func NewExecutionService(
	executionRepo secondary.ExecutionRepository,
	projectRepo secondary.ProjectRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *ExecutionServiceImpl {
	return &ExecutionServiceImpl{
		executionRepo: executionRepo,
		projectRepo:   projectRepo,
		logWriter:     logWriter,
		logger:        logger,
	}
}

// RecordExecution records the outcome of running a scenario.
func (s *ExecutionServiceImpl) RecordExecution(ctx context.Context, req primary.RecordExecutionRequest) (*primary.Execution, error) {
	scenarioExists, err := s.executionRepo.ScenarioExists(ctx, req.ScenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to check scenario: %w", err)
	}

	guardCtx := coreexecution.CreateContext{
		ScenarioID:     req.ScenarioID,
		ScenarioExists: scenarioExists,
		Status:         req.Status,
	}
	if result := coreexecution.CanCreateExecution(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	if req.ExecutedAt != "" {
		if _, err := time.Parse(time.RFC3339, req.ExecutedAt); err != nil {
			return nil, apperrors.Validation("executed_at %q is not an RFC3339 timestamp", req.ExecutedAt)
		}
	}

	nextID, err := s.executionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate execution ID: %w", err)
	}

	record := &secondary.ExecutionRecord{
		ID:         nextID,
		ScenarioID: req.ScenarioID,
		Status:     req.Status,
		Notes:      req.Notes,
		ExecutedAt: req.ExecutedAt,
	}
	if err := s.executionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record execution: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "execution", nextID) })
	s.logger.Debug("execution recorded", "execution_id", nextID, "scenario_id", req.ScenarioID, "status", req.Status)

	return s.GetExecution(ctx, nextID)
}

// GetExecution retrieves an execution by ID.
func (s *ExecutionServiceImpl) GetExecution(ctx context.Context, executionID string) (*primary.Execution, error) {
	record, err := s.executionRepo.GetByID(ctx, executionID)
	if err != nil {
		return nil, err
	}
	return recordToExecution(record), nil
}

// ListExecutions lists a scenario's executions, newest first.
func (s *ExecutionServiceImpl) ListExecutions(ctx context.Context, scenarioID string) ([]*primary.Execution, error) {
	exists, err := s.executionRepo.ScenarioExists(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to check scenario: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("scenario", scenarioID)
	}

	records, err := s.executionRepo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}

	executions := make([]*primary.Execution, len(records))
	for i, r := range records {
		executions[i] = recordToExecution(r)
	}
	return executions, nil
}

// ListFailedExecutions lists a project's failed executions with their scenarios.
func (s *ExecutionServiceImpl) ListFailedExecutions(ctx context.Context, projectID string) ([]*primary.FailedExecution, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("project", projectID)
	}

	records, err := s.executionRepo.ListFailedByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed executions: %w", err)
	}

	failed := make([]*primary.FailedExecution, len(records))
	for i, r := range records {
		failed[i] = &primary.FailedExecution{
			Scenario:  recordToScenario(r.Scenario),
			Execution: recordToExecution(r.Execution),
		}
	}
	return failed, nil
}

func recordToExecution(r *secondary.ExecutionRecord) *primary.Execution {
	return &primary.Execution{
		ID:         r.ID,
		ScenarioID: r.ScenarioID,
		Status:     r.Status,
		Notes:      r.Notes,
		ExecutedAt: r.ExecutedAt,
	}
}

// Ensure ExecutionServiceImpl implements the interface.
var _ primary.ExecutionService = (*ExecutionServiceImpl)(nil)
