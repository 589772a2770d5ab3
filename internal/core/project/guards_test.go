package project

import (
	"errors"
	"testing"

	"github.com/example/smartqa/internal/apperrors"
)

func TestCanCreateProject(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can create project with name only",
			ctx:         CreateContext{Name: "Demo Shop"},
			wantAllowed: true,
		},
		{
			name:        "can create project with https url",
			ctx:         CreateContext{Name: "Demo Shop", URL: "https://shop.example.com"},
			wantAllowed: true,
		},
		{
			name:        "cannot create project with blank name",
			ctx:         CreateContext{Name: "   "},
			wantAllowed: false,
			wantReason:  "project name is required",
		},
		{
			name:        "cannot create project with relative url",
			ctx:         CreateContext{Name: "Demo", URL: "shop.example.com"},
			wantAllowed: false,
			wantReason:  `project url "shop.example.com" must be an absolute http(s) URL`,
		},
		{
			name:        "cannot create project with ftp url",
			ctx:         CreateContext{Name: "Demo", URL: "ftp://files.example.com"},
			wantAllowed: false,
			wantReason:  `project url "ftp://files.example.com" must be an absolute http(s) URL`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateProject(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanDeleteProject(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DeleteContext
		wantAllowed bool
	}{
		{
			name:        "can delete empty project",
			ctx:         DeleteContext{ProjectID: "PROJ-001"},
			wantAllowed: true,
		},
		{
			name:        "cannot delete project with scenarios without force",
			ctx:         DeleteContext{ProjectID: "PROJ-001", ScenarioCount: 2},
			wantAllowed: false,
		},
		{
			name:        "can delete project with scenarios when forced",
			ctx:         DeleteContext{ProjectID: "PROJ-001", ScenarioCount: 2, ForceDelete: true},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeleteProject(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestGuardResult_Error(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("expected nil error for allowed result, got %v", err)
	}

	err := GuardResult{Allowed: false, Reason: "nope"}.Error()
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation kind by default, got %v", err)
	}

	err = GuardResult{Allowed: false, Reason: "gone", Kind: apperrors.ErrNotFound}.Error()
	if !errors.Is(err, apperrors.ErrNotFound) || err.Error() != "gone" {
		t.Errorf("expected not found kind with message, got %v", err)
	}
}
