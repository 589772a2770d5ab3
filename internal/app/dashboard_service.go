package app

import (
	"context"
	"fmt"

	coredashboard "github.com/example/smartqa/internal/core/dashboard"
	coreexecution "github.com/example/smartqa/internal/core/execution"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	statsRepo   secondary.StatsRepository
	projectRepo secondary.ProjectRepository
}

// NewDashboardService creates a new DashboardService with injected dependencies.
func NewDashboardService(statsRepo secondary.StatsRepository, projectRepo secondary.ProjectRepository) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		statsRepo:   statsRepo,
		projectRepo: projectRepo,
	}
}

// ComputeStats returns store-wide totals and the execution success rate.
func (s *DashboardServiceImpl) ComputeStats(ctx context.Context) (*primary.Stats, error) {
	counts, err := s.statsRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &primary.Stats{
		ProjectCount:  counts.Projects,
		ScenarioCount: counts.Scenarios,
		BugCount:      counts.BugReports,
		SuccessRate:   coredashboard.SuccessRate(counts.Passed, counts.Executions),
	}, nil
}

// ProjectSummary returns scenario and per-status execution counts for a project.
// Every execution status is present in the map, zero when unused.
func (s *DashboardServiceImpl) ProjectSummary(ctx context.Context, projectID string) (*primary.ProjectSummary, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.statsRepo.ProjectCounts(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute project stats: %w", err)
	}

	byStatus := make(map[string]int, len(coreexecution.Statuses))
	total := 0
	for _, status := range coreexecution.Statuses {
		byStatus[status] = counts.ExecutionsByStatus[status]
		total += byStatus[status]
	}

	return &primary.ProjectSummary{
		Project:            recordToProject(project),
		ScenarioCount:      counts.Scenarios,
		ExecutionsByStatus: byStatus,
		SuccessRate:        coredashboard.SuccessRate(byStatus[coreexecution.StatusPass], total),
	}, nil
}

// Ensure DashboardServiceImpl implements the interface.
var _ primary.DashboardService = (*DashboardServiceImpl)(nil)
