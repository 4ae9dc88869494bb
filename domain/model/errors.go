package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict reports that a create hit a resource that already exists.
	// Reconciliation normalizes it to a success outcome.
	ErrConflict = errors.New("resource already exists")
	// ErrNotFound reports that a remote resource is absent.
	ErrNotFound = errors.New("resource not found")

	ErrRunInvalid  = errors.New("run invalid")
	ErrRunNotFound = errors.New("run not found")
)

// AuthError is a failed authentication against the IAM service. It is
// fatal: no retry, the whole run aborts.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("authentication failed: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx admin API response, carrying the status and raw
// body for operator debugging.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("admin API returned %d: %s", e.Status, e.Body)
}

// LookupAmbiguityError reports a natural-key lookup that returned an
// unexpected result shape (multiple matches for an exact key).
type LookupAmbiguityError struct {
	Kind       Kind
	NaturalKey string
	Matches    int
}

func (e *LookupAmbiguityError) Error() string {
	return fmt.Sprintf("%s lookup for %q returned %d matches, want at most 1", e.Kind, e.NaturalKey, e.Matches)
}

// MissingPrerequisiteError reports a resource the workflow requires to
// pre-exist (the target user) that was not found. There is no creation
// fallback; the run aborts.
type MissingPrerequisiteError struct {
	Kind       Kind
	NaturalKey string
}

func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("required %s %q does not exist", e.Kind, e.NaturalKey)
}

// StepError wraps a failure with the name of the orchestration step that
// produced it.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }
