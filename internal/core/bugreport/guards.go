// Package bugreport contains the pure business logic for bug report operations.
// This is part of the Functional Core - no I/O, only pure functions.
package bugreport

import (
	"fmt"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
)

// Severities in descending order.
var Severities = []string{"critical", "high", "medium", "low"}

// DefaultSeverity applies when severity is left empty.
const DefaultSeverity = "medium"

// IsValidSeverity reports whether s is a known severity.
func IsValidSeverity(s string) bool {
	for _, v := range Severities {
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

// CreateContext provides context for bug report creation guards.
type CreateContext struct {
	ExecutionID     string
	ExecutionExists bool
	ExecutionStatus string
	Title           string
	Severity        string
}

// FileContext provides context for filing a bug report in the issue tracker.
type FileContext struct {
	BugReportID      string
	ExternalIssueKey string
	Force            bool
}

// CanCreateBugReport evaluates whether a bug report can be created.
// Rules:
// - Execution must exist and have status fail
// - Title must be non-empty
// - Severity must be a known value when given
func CanCreateBugReport(ctx CreateContext) GuardResult {
	if !ctx.ExecutionExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("execution %s not found", ctx.ExecutionID),
			Kind:    apperrors.ErrNotFound,
		}
	}
	if ctx.ExecutionStatus != "fail" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("execution %s has status %s; bug reports require a failed execution", ctx.ExecutionID, ctx.ExecutionStatus),
		}
	}
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Reason: "bug report title is required"}
	}
	if ctx.Severity != "" && !IsValidSeverity(ctx.Severity) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid severity %q (valid: %s)", ctx.Severity, strings.Join(Severities, ", ")),
		}
	}
	return GuardResult{Allowed: true}
}

// CanFileIssue evaluates whether a bug report should be sent to the tracker.
// Rule: a report already filed is only filed again when forced.
func CanFileIssue(ctx FileContext) GuardResult {
	if ctx.ExternalIssueKey != "" && !ctx.Force {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("bug report %s already filed as %s. Use --force to file again", ctx.BugReportID, ctx.ExternalIssueKey),
		}
	}
	return GuardResult{Allowed: true}
}
