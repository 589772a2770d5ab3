// Package project contains the pure business logic for project operations.
// This is part of the Functional Core - no I/O, only pure functions.
package project

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/smartqa/internal/apperrors"
)

// CreateContext provides context for project creation and update guards.
type CreateContext struct {
	Name string
	URL  string
}

// DeleteContext provides context for project deletion guards.
// Populated by the caller with pre-fetched dependency counts.
type DeleteContext struct {
	ProjectID     string
	ScenarioCount int
	ForceDelete   bool
}

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

// CanCreateProject evaluates whether a project can be saved with these fields.
// Rules:
// - Name must be non-empty after trimming
// - URL, when given, must be an absolute http(s) URL
func CanCreateProject(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Reason: "project name is required"}
	}
	if ctx.URL != "" {
		u, err := url.Parse(ctx.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return GuardResult{Allowed: false, Reason: fmt.Sprintf("project url %q must be an absolute http(s) URL", ctx.URL)}
		}
	}
	return GuardResult{Allowed: true}
}

// CanDeleteProject evaluates whether a project can be deleted.
// Rule: a project with scenarios is only deleted (with everything beneath it) when forced.
func CanDeleteProject(ctx DeleteContext) GuardResult {
	if ctx.ScenarioCount > 0 && !ctx.ForceDelete {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("project %s has %d scenarios. Use --force to delete it with its scenarios, executions and bug reports", ctx.ProjectID, ctx.ScenarioCount),
		}
	}
	return GuardResult{Allowed: true}
}
