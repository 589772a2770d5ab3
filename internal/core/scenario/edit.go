package scenario

import (
	"errors"

	"github.com/example/smartqa/internal/apperrors"
)

// ErrSessionClosed is returned when a saved or discarded session is used again.
var ErrSessionClosed = errors.New("edit session is closed")

// EditSession is a short-lived draft of a scenario's steps. It is owned by
// the caller and touches nothing until saved.
type EditSession struct {
	ID         string
	ScenarioID string
	DraftSteps []string
	closed     bool
}

// NewEditSession starts a draft from the scenario's current steps.
// A scenario without steps starts with one blank step.
func NewEditSession(id, scenarioID string, steps []string) *EditSession {
	draft := append([]string(nil), steps...)
	if len(draft) == 0 {
		draft = []string{""}
	}
	return &EditSession{ID: id, ScenarioID: scenarioID, DraftSteps: draft}
}

// AddStep appends a step.
func (s *EditSession) AddStep(text string) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.DraftSteps = append(s.DraftSteps, text)
	return nil
}

// SetStep replaces the step at index i.
func (s *EditSession) SetStep(i int, text string) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.DraftSteps[i] = text
	return nil
}

// RemoveStep deletes the step at index i. The last remaining step cannot be removed.
func (s *EditSession) RemoveStep(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	if len(s.DraftSteps) == 1 {
		return apperrors.Validation("cannot remove the last step")
	}
	s.DraftSteps = append(s.DraftSteps[:i], s.DraftSteps[i+1:]...)
	return nil
}

// MoveStep moves the step at index from to index to, shifting the others.
func (s *EditSession) MoveStep(from, to int) error {
	if err := s.check(from); err != nil {
		return err
	}
	if err := s.check(to); err != nil {
		return err
	}
	step := s.DraftSteps[from]
	rest := append(s.DraftSteps[:from:from], s.DraftSteps[from+1:]...)
	s.DraftSteps = append(rest[:to:to], append([]string{step}, rest[to:]...)...)
	return nil
}

// Steps returns a copy of the draft steps.
func (s *EditSession) Steps() []string {
	return append([]string(nil), s.DraftSteps...)
}

// Close marks the session as finished. Later edits fail with ErrSessionClosed.
func (s *EditSession) Close() { s.closed = true }

// Closed reports whether the session was saved or discarded.
func (s *EditSession) Closed() bool { return s.closed }

func (s *EditSession) check(i int) error {
	if s.closed {
		return ErrSessionClosed
	}
	if i < 0 || i >= len(s.DraftSteps) {
		return apperrors.Validation("step %d out of range (1-%d)", i+1, len(s.DraftSteps))
	}
	return nil
}
