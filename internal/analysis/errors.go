package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContext is returned by Chat when resume or job content is absent.
	ErrMissingContext = errors.New("missing resume or job data, analyze a resume first")
	// ErrNoStore is returned when a stored analysis is requested without a database.
	ErrNoStore = errors.New("analysis storage is not configured")
	// ErrNotFound is returned when a stored analysis does not exist.
	ErrNotFound = errors.New("analysis not found")
)

// RequestError reports a caller mistake such as a missing field.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Message)
}

// IngestionError wraps a failure to turn the resume or job posting into text.
type IngestionError struct {
	Source string // "resume" or "job posting"
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// APICallError wraps a failed model call.
type APICallError struct {
	Operation string
	Err       error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *APICallError) Unwrap() error {
	return e.Err
}
