package scenario

import (
	"testing"

	"github.com/example/smartqa/internal/apperrors"
)

func TestCanCreateScenario(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can create scenario with defaults",
			ctx:         CreateContext{ProjectID: "PROJ-001", ProjectExists: true, Title: "Login"},
			wantAllowed: true,
		},
		{
			name:        "cannot create scenario for missing project",
			ctx:         CreateContext{ProjectID: "PROJ-999", ProjectExists: false, Title: "Login"},
			wantAllowed: false,
			wantReason:  "project PROJ-999 not found",
		},
		{
			name:        "cannot create scenario without title",
			ctx:         CreateContext{ProjectID: "PROJ-001", ProjectExists: true, Title: " "},
			wantAllowed: false,
			wantReason:  "scenario title is required",
		},
		{
			name:        "cannot create scenario with unknown priority",
			ctx:         CreateContext{ProjectID: "PROJ-001", ProjectExists: true, Title: "Login", Priority: "urgent"},
			wantAllowed: false,
			wantReason:  `invalid priority "urgent" (valid: critical, high, medium, low)`,
		},
		{
			name:        "cannot create scenario with unknown status",
			ctx:         CreateContext{ProjectID: "PROJ-001", ProjectExists: true, Title: "Login", Status: "done"},
			wantAllowed: false,
			wantReason:  `invalid status "done" (valid: draft, active, archived)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateScenario(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanCreateScenario_MissingProjectIsNotFound(t *testing.T) {
	err := CanCreateScenario(CreateContext{ProjectID: "PROJ-999"}).Error()
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCanUpdateScenario(t *testing.T) {
	tests := []struct {
		name        string
		ctx         UpdateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can update with steps",
			ctx:         UpdateContext{ScenarioID: "SCN-001", Title: "Login", Priority: "high", Status: "active", Steps: []string{"Click"}},
			wantAllowed: true,
		},
		{
			name:        "cannot update without steps",
			ctx:         UpdateContext{ScenarioID: "SCN-001", Title: "Login", Priority: "high", Status: "active"},
			wantAllowed: false,
			wantReason:  "at least one step required",
		},
		{
			name:        "cannot update with bad priority",
			ctx:         UpdateContext{ScenarioID: "SCN-001", Title: "Login", Priority: "HIGH", Status: "active", Steps: []string{"Click"}},
			wantAllowed: false,
			wantReason:  `invalid priority "HIGH" (valid: critical, high, medium, low)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpdateScenario(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
