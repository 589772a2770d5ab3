// Package scenario contains the pure business logic for test scenario operations.
// This is part of the Functional Core - no I/O, only pure functions.
package scenario

import (
	"strings"

	"github.com/example/smartqa/internal/apperrors"
)

// Priorities in descending order of urgency.
var Priorities = []string{"critical", "high", "medium", "low"}

// Statuses a scenario can be in.
var Statuses = []string{"draft", "active", "archived"}

// DefaultPriority and DefaultStatus apply when a field is left empty.
const (
	DefaultPriority = "medium"
	DefaultStatus   = "active"
)

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool { return contains(Priorities, p) }

// IsValidStatus reports whether s is a known scenario status.
func IsValidStatus(s string) bool { return contains(Statuses, s) }

// NormalizeSteps trims every step and drops blank ones.
// At least one step must remain.
func NormalizeSteps(steps []string) ([]string, error) {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Validation("at least one step required")
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
