package apperr

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when no user is bound to the request
// context. Callers that can operate on local data alone should degrade
// instead of failing the whole computation.
var ErrNotAuthenticated = errors.New("not authenticated")

// RemoteReadError wraps a failure to read from the authoritative store.
// Non-fatal: consumers fall back to locally buffered data.
type RemoteReadError struct {
	Op  string
	Err error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("remote read %s: %v", e.Op, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// RemoteWriteError wraps a failure to write to the authoritative store.
// During reconciliation it aborts only the buffer-clear step; buffered
// events stay put for the next attempt.
type RemoteWriteError struct {
	Op  string
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote write %s: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// PersistenceError wraps a local storage failure (disk or redis key-value
// store). Recoverable by retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("local persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError reports an out-of-range input. Raised before any store
// mutation is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsRemoteRead(err error) bool {
	var re *RemoteReadError
	return errors.As(err, &re)
}

func IsRemoteWrite(err error) bool {
	var we *RemoteWriteError
	return errors.As(err, &we)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
