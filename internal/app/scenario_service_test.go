package app

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/example/smartqa/internal/apperrors"
	corescenario "github.com/example/smartqa/internal/core/scenario"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

func newTestScenarioService() (*ScenarioServiceImpl, *mockScenarioRepository, *mockLogWriter) {
	projects := newMockProjectRepository()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Shop"}
	scenarios := newMockScenarioRepository(projects)
	logWriter := &mockLogWriter{}
	return NewScenarioService(scenarios, logWriter, discardLogger()), scenarios, logWriter
}

func createTestScenario(t *testing.T, service *ScenarioServiceImpl, steps []string) *primary.Scenario {
	t.Helper()
	s, err := service.CreateScenario(context.Background(), primary.CreateScenarioRequest{
		ProjectID: "PROJ-001",
		Title:     "Login",
		Steps:     steps,
	})
	if err != nil {
		t.Fatalf("failed to create scenario: %v", err)
	}
	return s
}

func TestCreateScenario_Defaults(t *testing.T) {
	service, _, _ := newTestScenarioService()

	s := createTestScenario(t, service, []string{" Open page ", ""})
	if s.Priority != "medium" || s.Status != "active" {
		t.Errorf("expected medium/active defaults, got %s/%s", s.Priority, s.Status)
	}
	if !reflect.DeepEqual(s.Steps, []string{" Open page ", ""}) {
		t.Errorf("expected steps stored as given, got %q", s.Steps)
	}
}

func TestCreateScenario_Guards(t *testing.T) {
	tests := []struct {
		name    string
		req     primary.CreateScenarioRequest
		checkFn func(error) bool
	}{
		{"missing project", primary.CreateScenarioRequest{ProjectID: "PROJ-404", Title: "Login"}, apperrors.IsNotFound},
		{"blank title", primary.CreateScenarioRequest{ProjectID: "PROJ-001", Title: " "}, apperrors.IsValidation},
		{"bad priority", primary.CreateScenarioRequest{ProjectID: "PROJ-001", Title: "Login", Priority: "urgent"}, apperrors.IsValidation},
		{"bad status", primary.CreateScenarioRequest{ProjectID: "PROJ-001", Title: "Login", Status: "done"}, apperrors.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, scenarios, _ := newTestScenarioService()
			_, err := service.CreateScenario(context.Background(), tt.req)
			if !tt.checkFn(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if len(scenarios.scenarios) != 0 {
				t.Error("expected nothing to be saved")
			}
		})
	}
}

func TestUpdateScenario_NormalizesSteps(t *testing.T) {
	service, _, logWriter := newTestScenarioService()
	s := createTestScenario(t, service, []string{"a"})

	updated, err := service.UpdateScenario(context.Background(), primary.UpdateScenarioRequest{
		ScenarioID: s.ID,
		Steps:      []string{"  ", "Click login", ""},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(updated.Steps, []string{"Click login"}) {
		t.Errorf("expected [Click login], got %q", updated.Steps)
	}
	got := logWriter.actions()
	if got[len(got)-1] != "update scenario SCN-001 steps" {
		t.Errorf("expected steps audit entry, got %v", got)
	}
}

func TestUpdateScenario_AllBlankSteps(t *testing.T) {
	service, scenarios, _ := newTestScenarioService()
	s := createTestScenario(t, service, []string{"a"})

	_, err := service.UpdateScenario(context.Background(), primary.UpdateScenarioRequest{
		ScenarioID: s.ID,
		Steps:      []string{"  ", ""},
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "at least one step required" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if scenarios.updates != 0 {
		t.Error("expected no update")
	}
}

func TestUpdateScenario_FieldsOnlyKeepsSteps(t *testing.T) {
	service, _, _ := newTestScenarioService()
	s := createTestScenario(t, service, []string{"a", "b"})

	updated, err := service.UpdateScenario(context.Background(), primary.UpdateScenarioRequest{
		ScenarioID: s.ID,
		Fields:     primary.ScenarioFields{Priority: strPtr("critical")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Priority != "critical" {
		t.Errorf("expected critical, got %q", updated.Priority)
	}
	if len(updated.Steps) != 2 {
		t.Errorf("expected steps kept, got %q", updated.Steps)
	}
}

func TestUpdateScenario_FieldsOnlyWithoutStepsFails(t *testing.T) {
	service, _, _ := newTestScenarioService()
	s := createTestScenario(t, service, nil)

	_, err := service.UpdateScenario(context.Background(), primary.UpdateScenarioRequest{
		ScenarioID: s.ID,
		Fields:     primary.ScenarioFields{Title: strPtr("Renamed")},
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for a scenario with no steps, got %v", err)
	}
}

func TestUpdateScenario_InvalidPriority(t *testing.T) {
	service, _, _ := newTestScenarioService()
	s := createTestScenario(t, service, []string{"a"})

	_, err := service.UpdateScenario(context.Background(), primary.UpdateScenarioRequest{
		ScenarioID: s.ID,
		Fields:     primary.ScenarioFields{Priority: strPtr("urgent")},
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteScenario(t *testing.T) {
	service, scenarios, logWriter := newTestScenarioService()
	s := createTestScenario(t, service, []string{"a"})

	if err := service.DeleteScenario(context.Background(), s.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(scenarios.scenarios) != 0 {
		t.Error("expected scenario to be removed")
	}
	got := logWriter.actions()
	if got[len(got)-1] != "delete scenario SCN-001" {
		t.Errorf("expected delete audit entry, got %v", got)
	}

	if err := service.DeleteScenario(context.Background(), s.ID); !apperrors.IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestEditSession_SaveFlow(t *testing.T) {
	service, scenarios, _ := newTestScenarioService()
	ctx := context.Background()
	s := createTestScenario(t, service, []string{"Open page", "Click login"})

	session, err := service.BeginEdit(ctx, s.ID)
	if err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	if session.ID == "" || session.ScenarioID != s.ID {
		t.Fatalf("unexpected session %+v", session)
	}

	_ = session.AddStep("  Check dashboard ")
	_ = session.AddStep("   ")
	_ = session.MoveStep(2, 0)
	if scenarios.updates != 0 {
		t.Fatal("expected no writes before save")
	}

	saved, err := service.SaveEdit(ctx, session, primary.ScenarioFields{Title: strPtr("Login flow")})
	if err != nil {
		t.Fatalf("SaveEdit failed: %v", err)
	}
	want := []string{"Check dashboard", "Open page", "Click login"}
	if !reflect.DeepEqual(saved.Steps, want) {
		t.Errorf("expected %q, got %q", want, saved.Steps)
	}
	if saved.Title != "Login flow" {
		t.Errorf("expected title update, got %q", saved.Title)
	}
	if !session.Closed() {
		t.Error("expected session to be closed after save")
	}

	if _, err := service.SaveEdit(ctx, session, primary.ScenarioFields{}); !errors.Is(err, corescenario.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed on reuse, got %v", err)
	}
}

func TestEditSession_FailedSaveKeepsSessionOpen(t *testing.T) {
	service, _, _ := newTestScenarioService()
	ctx := context.Background()
	s := createTestScenario(t, service, []string{"a"})

	session, _ := service.BeginEdit(ctx, s.ID)
	_ = session.SetStep(0, "  ")

	if _, err := service.SaveEdit(ctx, session, primary.ScenarioFields{}); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if session.Closed() {
		t.Error("expected session to stay open after a failed save")
	}
}

func TestEditSession_Discard(t *testing.T) {
	service, scenarios, _ := newTestScenarioService()
	ctx := context.Background()
	s := createTestScenario(t, service, []string{"a"})

	session, _ := service.BeginEdit(ctx, s.ID)
	_ = session.AddStep("b")
	service.DiscardEdit(session)

	if !session.Closed() {
		t.Error("expected session to be closed")
	}
	if scenarios.updates != 0 {
		t.Error("expected discard to write nothing")
	}
	stored, _ := service.GetScenario(ctx, s.ID)
	if len(stored.Steps) != 1 {
		t.Errorf("expected stored steps untouched, got %q", stored.Steps)
	}
}

func TestBeginEdit_NotFound(t *testing.T) {
	service, _, _ := newTestScenarioService()

	if _, err := service.BeginEdit(context.Background(), "SCN-404"); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
