package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
	corebugreport "github.com/example/smartqa/internal/core/bugreport"
	coreexecution "github.com/example/smartqa/internal/core/execution"
	"github.com/example/smartqa/internal/export"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// BugReportServiceImpl implements the BugReportService interface.
type BugReportServiceImpl struct {
	bugRepo       secondary.BugReportRepository
	executionRepo secondary.ExecutionRepository
	scenarioRepo  secondary.ScenarioRepository
	generator     secondary.BugReportGenerator
	logWriter     secondary.LogWriter
	logger        *slog.Logger
}

// NewBugReportService creates a new BugReportService with injected dependencies.
func NewBugReportService(
	bugRepo secondary.BugReportRepository,
	executionRepo secondary.ExecutionRepository,
	scenarioRepo secondary.ScenarioRepository,
	generator secondary.BugReportGenerator,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *BugReportServiceImpl {
	return &BugReportServiceImpl{
		bugRepo:       bugRepo,
		executionRepo: executionRepo,
		scenarioRepo:  scenarioRepo,
		generator:     generator,
		logWriter:     logWriter,
		logger:        logger,
	}
}

// CreateBugReport creates a bug report from a failed execution.
func (s *BugReportServiceImpl) CreateBugReport(ctx context.Context, req primary.CreateBugReportRequest) (*primary.BugReport, error) {
	// 1. Load the execution the report is about
	execution, err := s.executionRepo.GetByID(ctx, req.ExecutionID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load execution: %w", err)
	}

	// 2. Check guard
	title := strings.TrimSpace(req.Title)
	guardCtx := corebugreport.CreateContext{
		ExecutionID:     req.ExecutionID,
		ExecutionExists: execution != nil,
		Title:           title,
		Severity:        req.Severity,
	}
	if execution != nil {
		guardCtx.ExecutionStatus = execution.Status
	}
	if result := corebugreport.CanCreateBugReport(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 3. Persist
	nextID, err := s.bugRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bug report ID: %w", err)
	}

	record := &secondary.BugReportRecord{
		ID:               nextID,
		ExecutionID:      req.ExecutionID,
		Title:            title,
		Severity:         orDefault(req.Severity, corebugreport.DefaultSeverity),
		Description:      req.Description,
		StepsToReproduce: req.StepsToReproduce,
		ExpectedResult:   req.ExpectedResult,
		ActualResult:     req.ActualResult,
		AIGenerated:      req.AIGenerated,
	}
	if err := s.bugRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create bug report: %w", err)
	}
	writeAudit(ctx, s.logWriter, s.logger, func(w secondary.LogWriter) error { return w.LogCreate(ctx, "bug_report", nextID) })
	s.logger.Debug("bug report created", "bug_report_id", nextID, "execution_id", req.ExecutionID)

	return s.GetBugReport(ctx, nextID)
}

// GetBugReport retrieves a bug report by ID.
func (s *BugReportServiceImpl) GetBugReport(ctx context.Context, bugReportID string) (*primary.BugReport, error) {
	record, err := s.bugRepo.GetByID(ctx, bugReportID)
	if err != nil {
		return nil, err
	}
	return recordToBugReport(record), nil
}

// ListBugReports lists bug reports, newest first.
func (s *BugReportServiceImpl) ListBugReports(ctx context.Context, filters primary.BugReportFilters) ([]*primary.BugReport, error) {
	records, err := s.bugRepo.List(ctx, secondary.BugReportFilters(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list bug reports: %w", err)
	}

	bugs := make([]*primary.BugReport, len(records))
	for i, r := range records {
		bugs[i] = recordToBugReport(r)
	}
	return bugs, nil
}

// DraftBugReport asks the generator for a draft of a failed execution.
// The draft is returned for review and never saved here.
func (s *BugReportServiceImpl) DraftBugReport(ctx context.Context, executionID string) (*primary.BugReportDraft, error) {
	execution, err := s.executionRepo.GetByID(ctx, executionID)
	if err != nil {
		return nil, err
	}
	if execution.Status != coreexecution.StatusFail {
		return nil, apperrors.Validation("execution %s has status %s; bug reports require a failed execution", executionID, execution.Status)
	}

	scenario, err := s.scenarioRepo.GetByID(ctx, execution.ScenarioID)
	if err != nil {
		return nil, err
	}

	draft, err := s.generator.DraftBugReport(ctx, secondary.FailureBrief{
		ScenarioTitle: scenario.Title,
		Steps:         strings.Join(scenario.Steps, "\n"),
		Notes:         execution.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &primary.BugReportDraft{
		ExecutionID:      executionID,
		Title:            draft.Title,
		Severity:         draft.Severity,
		Description:      draft.Description,
		StepsToReproduce: draft.StepsToReproduce,
		ExpectedResult:   draft.ExpectedResult,
		ActualResult:     draft.ActualResult,
	}, nil
}

// ExportBugReport renders a bug report as text or markdown.
func (s *BugReportServiceImpl) ExportBugReport(ctx context.Context, bugReportID, format string) (*primary.ExportedBugReport, error) {
	bug, err := s.GetBugReport(ctx, bugReportID)
	if err != nil {
		return nil, err
	}
	return export.Render(bug, format)
}

func recordToBugReport(r *secondary.BugReportRecord) *primary.BugReport {
	return &primary.BugReport{
		ID:               r.ID,
		ExecutionID:      r.ExecutionID,
		ScenarioID:       r.ScenarioID,
		ScenarioTitle:    r.ScenarioTitle,
		ProjectID:        r.ProjectID,
		Title:            r.Title,
		Severity:         r.Severity,
		Description:      r.Description,
		StepsToReproduce: r.StepsToReproduce,
		ExpectedResult:   r.ExpectedResult,
		ActualResult:     r.ActualResult,
		AIGenerated:      r.AIGenerated,
		ExternalIssueKey: r.ExternalIssueKey,
		ExternalIssueURL: r.ExternalIssueURL,
		FiledAt:          r.FiledAt,
		CreatedAt:        r.CreatedAt,
	}
}

// Ensure BugReportServiceImpl implements the interface.
var _ primary.BugReportService = (*BugReportServiceImpl)(nil)
