// Package execution contains the pure business logic for test execution operations.
// This is part of the Functional Core - no I/O, only pure functions.
package execution

import (
	"fmt"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
)

// Statuses an execution can record. There is no default.
var Statuses = []string{StatusPass, StatusFail, StatusBlocked, StatusSkipped}

const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusBlocked = "blocked"
	StatusSkipped = "skipped"
)

// IsValidStatus reports whether s is a known execution status.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error // apperrors sentinel; validation when nil
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

// CreateContext provides context for execution creation guards.
type CreateContext struct {
	ScenarioID     string
	ScenarioExists bool
	Status         string
}

// CanCreateExecution evaluates whether an execution can be recorded.
// Rules:
// - Scenario must exist
// - Status is required and must be a known value
func CanCreateExecution(ctx CreateContext) GuardResult {
	if !ctx.ScenarioExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("scenario %s not found", ctx.ScenarioID),
			Kind:    apperrors.ErrNotFound,
		}
	}
	if ctx.Status == "" {
		return GuardResult{Allowed: false, Reason: "execution status is required"}
	}
	if !IsValidStatus(ctx.Status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid status %q (valid: %s)", ctx.Status, strings.Join(Statuses, ", ")),
		}
	}
	return GuardResult{Allowed: true}
}
