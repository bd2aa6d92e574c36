package model

import (
	"errors"
	"fmt"
)

// ErrDocumentNotFound signals that an operation addressed a document id that
// does not exist. Read paths return an absent result instead; write and delete
// paths raise this.
var ErrDocumentNotFound = errors.New("document not found")

// ValidationError rejects malformed input before any pipeline work begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ProcessingError wraps a failure from any ingestion stage with the filename
// of the document being processed.
type ProcessingError struct {
	Filename string
	Err      error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed to process document %s: %v", e.Filename, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// DimensionError reports an embedding whose dimension does not match the
// index configuration. This is a configuration problem, not a data problem.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: index expects %d, got %d", e.Want, e.Got)
}
