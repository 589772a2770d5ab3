package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/smartqa/internal/adapters/sqlite"
)

func TestStatsRepository_Counts_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatsRepository(db)

	counts, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.Projects != 0 || counts.Scenarios != 0 || counts.BugReports != 0 || counts.Executions != 0 || counts.Passed != 0 {
		t.Errorf("expected all zero, got %+v", counts)
	}
}

func TestStatsRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	seedProject(t, db, "PROJ-001", "")
	seedScenario(t, db, "SCN-001", "PROJ-001", "")
	seedExecution(t, db, "EXEC-001", "SCN-001", "pass", time.Now())
	seedExecution(t, db, "EXEC-002", "SCN-001", "pass", time.Now())
	seedExecution(t, db, "EXEC-003", "SCN-001", "fail", time.Now())
	seedBugReport(t, db, "BUG-001", "EXEC-003")
	repo := sqlite.NewStatsRepository(db)

	counts, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.Projects != 1 || counts.Scenarios != 1 || counts.BugReports != 1 {
		t.Errorf("unexpected entity counts: %+v", counts)
	}
	if counts.Executions != 3 || counts.Passed != 2 {
		t.Errorf("expected 3 executions with 2 passed, got %+v", counts)
	}
}

func TestStatsRepository_ProjectCounts(t *testing.T) {
	db := setupTestDB(t)
	seedProject(t, db, "PROJ-001", "")
	seedProject(t, db, "PROJ-002", "")
	seedScenario(t, db, "SCN-001", "PROJ-001", "")
	seedScenario(t, db, "SCN-002", "PROJ-002", "")
	seedExecution(t, db, "EXEC-001", "SCN-001", "blocked", time.Now())
	seedExecution(t, db, "EXEC-002", "SCN-001", "fail", time.Now())
	seedExecution(t, db, "EXEC-003", "SCN-002", "pass", time.Now())
	repo := sqlite.NewStatsRepository(db)

	counts, err := repo.ProjectCounts(context.Background(), "PROJ-001")
	if err != nil {
		t.Fatalf("ProjectCounts failed: %v", err)
	}
	if counts.Scenarios != 1 {
		t.Errorf("expected 1 scenario, got %d", counts.Scenarios)
	}
	if counts.ExecutionsByStatus["blocked"] != 1 || counts.ExecutionsByStatus["fail"] != 1 {
		t.Errorf("unexpected status counts: %v", counts.ExecutionsByStatus)
	}
	if counts.ExecutionsByStatus["pass"] != 0 {
		t.Errorf("other project's pass leaked: %v", counts.ExecutionsByStatus)
	}
}
