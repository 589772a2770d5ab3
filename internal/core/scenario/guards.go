package scenario

import (
	"fmt"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	Kind    error  // apperrors sentinel; validation when nil
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	kind := r.Kind
	if kind == nil {
		kind = apperrors.ErrValidation
	}
	return &apperrors.Error{Kind: kind, Msg: r.Reason}
}

// CreateContext provides context for scenario creation guards.
// Empty Priority and Status mean the defaults.
type CreateContext struct {
	ProjectID     string
	ProjectExists bool
	Title         string
	Priority      string
	Status        string
}

// UpdateContext provides context for scenario update guards.
// Steps are the already-normalized steps.
type UpdateContext struct {
	ScenarioID string
	Title      string
	Priority   string
	Status     string
	Steps      []string
}

// CanCreateScenario evaluates whether a scenario can be created.
// Rules:
// - Project must exist
// - Title must be non-empty
// - Priority and status must be known values when given
func CanCreateScenario(ctx CreateContext) GuardResult {
	if !ctx.ProjectExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project %s not found", ctx.ProjectID),
			Kind:    apperrors.ErrNotFound,
		}
	}
	return checkFields(ctx.Title, ctx.Priority, ctx.Status)
}

// CanUpdateScenario evaluates whether a scenario can be saved with new values.
// Rules:
// - Title must be non-empty
// - Priority and status must be known values
// - At least one step must remain
func CanUpdateScenario(ctx UpdateContext) GuardResult {
	if r := checkFields(ctx.Title, ctx.Priority, ctx.Status); !r.Allowed {
		return r
	}
	if len(ctx.Steps) == 0 {
		return GuardResult{Allowed: false, Reason: "at least one step required"}
	}
	return GuardResult{Allowed: true}
}

func checkFields(title, priority, status string) GuardResult {
	if strings.TrimSpace(title) == "" {
		return GuardResult{Allowed: false, Reason: "scenario title is required"}
	}
	if priority != "" && !IsValidPriority(priority) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid priority %q (valid: %s)", priority, strings.Join(Priorities, ", ")),
		}
	}
	if status != "" && !IsValidStatus(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid status %q (valid: %s)", status, strings.Join(Statuses, ", ")),
		}
	}
	return GuardResult{Allowed: true}
}
