package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/smartqa/internal/apperrors"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/ports/secondary"
)

func newTestGenerationService() (*GenerationServiceImpl, *mockScenarioGenerator, *mockScenarioRepository) {
	projects := newMockProjectRepository()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Shop", URL: "https://shop.example.com"}
	scenarios := newMockScenarioRepository(projects)
	scenarioService := NewScenarioService(scenarios, nil, discardLogger())
	generator := &mockScenarioGenerator{drafts: []secondary.ScenarioDraft{
		{Title: "Login", Steps: []string{"Open", "Submit"}, Priority: "high"},
		{Title: "Search", Steps: []string{"Type"}, Priority: "medium"},
	}}
	return NewGenerationService(projects, generator, scenarioService, discardLogger()), generator, scenarios
}

func TestGenerateScenarios(t *testing.T) {
	service, generator, scenarios := newTestGenerationService()

	drafts, err := service.GenerateScenarios(context.Background(), "PROJ-001", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(drafts) != 2 || drafts[0].Title != "Login" {
		t.Errorf("unexpected drafts %+v", drafts)
	}
	if generator.lastCount != 5 || generator.lastBrief.Name != "Shop" || generator.lastBrief.URL != "https://shop.example.com" {
		t.Errorf("unexpected generator input %+v count=%d", generator.lastBrief, generator.lastCount)
	}
	if len(scenarios.scenarios) != 0 {
		t.Error("expected generation to save nothing")
	}
}

func TestGenerateScenarios_Errors(t *testing.T) {
	service, generator, _ := newTestGenerationService()
	ctx := context.Background()

	if _, err := service.GenerateScenarios(ctx, "PROJ-001", 0); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for count 0, got %v", err)
	}
	if _, err := service.GenerateScenarios(ctx, "PROJ-404", 3); !apperrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	generator.err = apperrors.Generation("could not parse generator output")
	if _, err := service.GenerateScenarios(ctx, "PROJ-001", 3); !errors.Is(err, apperrors.ErrGeneration) {
		t.Errorf("expected generation error, got %v", err)
	}
}

func TestGenerateScenarios_EmptyIsNotAnError(t *testing.T) {
	service, generator, _ := newTestGenerationService()
	generator.drafts = nil

	drafts, err := service.GenerateScenarios(context.Background(), "PROJ-001", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("expected no drafts, got %d", len(drafts))
	}
}

func TestAcceptScenarioDrafts(t *testing.T) {
	service, _, scenarios := newTestGenerationService()
	ctx := context.Background()

	drafts, _ := service.GenerateScenarios(ctx, "PROJ-001", 2)
	saved, err := service.AcceptScenarioDrafts(ctx, "PROJ-001", drafts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(saved) != 2 || len(scenarios.scenarios) != 2 {
		t.Fatalf("expected 2 saved scenarios, got %d", len(saved))
	}
	for _, s := range saved {
		if !s.CreatedByAI {
			t.Errorf("expected %s to be marked AI-created", s.ID)
		}
	}
}

func TestAcceptScenarioDrafts_ValidatesAllFirst(t *testing.T) {
	tests := []struct {
		name    string
		project string
		drafts  []primary.ScenarioDraft
		checkFn func(error) bool
	}{
		{"missing project", "PROJ-404", []primary.ScenarioDraft{{Title: "A", Steps: []string{"x"}}}, apperrors.IsNotFound},
		{"bad priority", "PROJ-001", []primary.ScenarioDraft{{Title: "A", Steps: []string{"x"}}, {Title: "B", Steps: []string{"y"}, Priority: "urgent"}}, apperrors.IsValidation},
		{"no steps", "PROJ-001", []primary.ScenarioDraft{{Title: "A", Steps: []string{"x"}}, {Title: "B", Steps: []string{" "}}}, apperrors.IsValidation},
		{"blank title", "PROJ-001", []primary.ScenarioDraft{{Title: "", Steps: []string{"x"}}}, apperrors.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, scenarios := newTestGenerationService()
			_, err := service.AcceptScenarioDrafts(context.Background(), tt.project, tt.drafts)
			if !tt.checkFn(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if len(scenarios.scenarios) != 0 {
				t.Error("expected no scenario to be saved")
			}
		})
	}
}

func TestAcceptScenarioDrafts_EmptyDraftsMissingProject(t *testing.T) {
	service, _, _ := newTestGenerationService()

	if _, err := service.AcceptScenarioDrafts(context.Background(), "PROJ-404", nil); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	saved, err := service.AcceptScenarioDrafts(context.Background(), "PROJ-001", nil)
	if err != nil {
		t.Fatalf("expected no error for an existing project, got %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("expected nothing saved, got %d", len(saved))
	}
}

func TestAcceptScenarioDrafts_StoreFailureSavesNothing(t *testing.T) {
	service, _, scenarios := newTestGenerationService()
	scenarios.createErr = errors.New("disk full")

	drafts := []primary.ScenarioDraft{
		{Title: "A", Steps: []string{"x"}},
		{Title: "B", Steps: []string{"y"}},
	}
	saved, err := service.AcceptScenarioDrafts(context.Background(), "PROJ-001", drafts)
	if err == nil {
		t.Fatal("expected error")
	}
	if saved != nil {
		t.Errorf("expected no scenarios returned, got %d", len(saved))
	}
	if len(scenarios.scenarios) != 0 {
		t.Errorf("expected no scenario to be saved, got %d", len(scenarios.scenarios))
	}
}
