package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_MessageAndKind(t *testing.T) {
	err := NotFound("scenario", "SCN-009")
	if err.Error() != "scenario SCN-009 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if IsValidation(err) {
		t.Error("did not expect a validation error")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("failed to update scenario: %w", Validation("at least one step required"))
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected wrapped error to match ErrValidation")
	}
	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if appErr.Msg != "at least one step required" {
		t.Errorf("unexpected message %q", appErr.Msg)
	}
}

func TestGenerationAndTracker(t *testing.T) {
	if !errors.Is(Generation("could not parse generator output"), ErrGeneration) {
		t.Error("expected ErrGeneration")
	}
	if !errors.Is(Tracker("HTTP %d", 500), ErrTracker) {
		t.Error("expected ErrTracker")
	}
}
