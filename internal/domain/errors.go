package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSessionState rejects diary derivation from a session that
	// is not finalized.
	ErrInvalidSessionState = errors.New("attendance session is not finalized")

	// ErrLockedForEditing rejects edits to submitted or approved diaries.
	ErrLockedForEditing = errors.New("work diary is locked for editing")

	// ErrDiaryCapacityExceeded is returned when a year's diary number
	// sequence is exhausted.
	ErrDiaryCapacityExceeded = errors.New("work diary capacity exceeded for year")

	// ErrForbidden rejects an operation the actor is not allowed to perform.
	ErrForbidden = errors.New("forbidden")
)

// InvalidTransitionError reports a workflow event fired against a diary in
// a status that does not accept it. Target is the status the event would
// have moved the diary into.
type InvalidTransitionError struct {
	From   DiaryStatus
	Event  string
	Target DiaryStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("cannot %s a work diary in status %q: %q -> %q is not a valid transition",
			e.Event, e.From, e.From, e.Target)
	}
	return fmt.Sprintf("cannot %s a work diary in status %q", e.Event, e.From)
}

// ValidationError carries field-level failures for a single request or row.
type ValidationError struct {
	Errors []RowError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors", len(e.Errors))
}

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Errors: []RowError{{Field: field, Reason: reason}}}
}
