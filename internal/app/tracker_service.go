package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/smartqa/internal/apperrors"
	corebugreport "github.com/example/smartqa/internal/core/bugreport"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// TrackerServiceImpl implements the TrackerService interface.
type TrackerServiceImpl struct {
	tracker     secondary.IssueTracker
	bugRepo     secondary.BugReportRepository
	projectRepo secondary.ProjectRepository
	logWriter   secondary.LogWriter
	logger      *slog.Logger
}

// NewTrackerService creates a new TrackerService with injected dependencies.
func NewTrackerService(
	tracker secondary.IssueTracker,
	bugRepo secondary.BugReportRepository,
	projectRepo secondary.ProjectRepository,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *TrackerServiceImpl {
	return &TrackerServiceImpl{
		tracker:     tracker,
		bugRepo:     bugRepo,
		projectRepo: projectRepo,
		logWriter:   logWriter,
		logger:      logger,
	}
}

// TestConnection checks the tracker configuration.
func (s *TrackerServiceImpl) TestConnection(ctx context.Context) (*primary.TrackerStatus, error) {
	result := s.tracker.TestConnection(ctx)
	return &primary.TrackerStatus{
		Success:     result.Success,
		Message:     result.Message,
		OfflineMode: result.OfflineMode,
	}, nil
}

// FileIssue files a bug report in the tracker. An already filed report
// returns its existing issue unless Force is set. Simulated issues are
// reported but not recorded on the bug report.
func (s *TrackerServiceImpl) FileIssue(ctx context.Context, req primary.FileIssueRequest) (*primary.FileIssueResult, error) {
	bug, err := s.bugRepo.GetByID(ctx, req.BugReportID)
	if err != nil {
		return nil, err
	}

	guardCtx := corebugreport.FileContext{
		BugReportID:      bug.ID,
		ExternalIssueKey: bug.ExternalIssueKey,
		Force:            req.Force,
	}
	if result := corebugreport.CanFileIssue(guardCtx); !result.Allowed {
		return &primary.FileIssueResult{
			IssueKey:     bug.ExternalIssueKey,
			IssueURL:     bug.ExternalIssueURL,
			Message:      result.Reason,
			AlreadyFiled: true,
		}, nil
	}

	projectName := ""
	if project, err := s.projectRepo.GetByID(ctx, bug.ProjectID); err == nil {
		projectName = project.Name
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	result := s.tracker.CreateIssue(ctx, secondary.IssueRequest{
		Title:            bug.Title,
		Description:      bug.Description,
		StepsToReproduce: bug.StepsToReproduce,
		ExpectedResult:   bug.ExpectedResult,
		ActualResult:     bug.ActualResult,
		Severity:         bug.Severity,
		ProjectName:      projectName,
	})
	if !result.Success {
		return nil, apperrors.Tracker("%s", result.Message)
	}

	if !result.Simulated {
		if err := s.bugRepo.SetExternalIssue(ctx, bug.ID, result.IssueKey, result.IssueURL); err != nil {
			return nil, fmt.Errorf("issue %s created but not recorded: %w", result.IssueKey, err)
		}
		writeChanges(ctx, s.logWriter, s.logger, "bug_report", bug.ID, []fieldChange{
			{"external_issue_key", bug.ExternalIssueKey, result.IssueKey},
		})
	}
	s.logger.Info("bug report filed", "bug_report_id", bug.ID, "issue_key", result.IssueKey, "simulated", result.Simulated)

	return &primary.FileIssueResult{
		IssueKey:  result.IssueKey,
		IssueURL:  result.IssueURL,
		Message:   result.Message,
		Simulated: result.Simulated,
	}, nil
}

// Ensure TrackerServiceImpl implements the interface.
var _ primary.TrackerService = (*TrackerServiceImpl)(nil)
