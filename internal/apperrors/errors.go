package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected storage or system failure whose details
// must not leak to API clients.
var ErrInternal = errors.New("internal error")

// ErrSourceUnavailable indicates that an external data source could not be
// reached, timed out, or returned a malformed payload.
var ErrSourceUnavailable = errors.New("external data source unavailable")

// SourceError wraps ErrSourceUnavailable and records which upstream failed.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("source %s unavailable", e.Source)
}

// Unwrap lets errors.Is(err, ErrSourceUnavailable) match.
func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}

// NewSourceError builds a SourceError for the named upstream.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}
