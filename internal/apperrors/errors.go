// Package apperrors defines the error taxonomy shared by every layer.
// Callers classify failures with errors.Is against the sentinels below.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad or missing input. The user must correct and resubmit.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a reference to a missing record.
	ErrNotFound = errors.New("not found")
	// ErrGeneration marks unusable output from a drafting collaborator.
	ErrGeneration = errors.New("generation failed")
	// ErrTracker marks a failed issue tracker call (transport or rejection).
	ErrTracker = errors.New("issue tracker error")
)

// Error carries a human readable message and the sentinel it belongs to.
type Error struct {
	Kind error
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns the sentinel so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation returns an ErrValidation error with the given message.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound error for the given entity, e.g. "scenario SCN-001 not found".
func NotFound(entity, id string) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("%s %s not found", entity, id)}
}

// Generation returns an ErrGeneration error with the given message.
func Generation(format string, args ...any) error {
	return &Error{Kind: ErrGeneration, Msg: fmt.Sprintf(format, args...)}
}

// Tracker returns an ErrTracker error with the given message.
func Tracker(format string, args ...any) error {
	return &Error{Kind: ErrTracker, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err refers to a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
