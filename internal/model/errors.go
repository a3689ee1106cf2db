package model

import (
	"errors"
	"fmt"
)

// ValidationError represents input rejected before any embedding or persistence call.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// NotFoundError represents a read, update or delete of an unknown record.
type NotFoundError struct {
	Field   string
	Message string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found %s: %s", e.Field, e.Message)
}

// NewNotFoundError constructs NotFoundError
func NewNotFoundError(field, message string) NotFoundError {
	return NotFoundError{Field: field, Message: message}
}

// IsNotFoundError checks if error is NotFoundError
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// EmbeddingError reports a failed embedding provider call. It is never retried silently.
type EmbeddingError struct {
	Op  string
	Err error
}

func (e EmbeddingError) Error() string {
	return fmt.Sprintf("embedding generation failed during %s: %v", e.Op, e.Err)
}

func (e EmbeddingError) Unwrap() error { return e.Err }

// IsEmbeddingError checks if error is EmbeddingError
func IsEmbeddingError(err error) bool {
	var ee EmbeddingError
	return errors.As(err, &ee)
}

// AnalysisError reports input that cannot be tokenized as text.
type AnalysisError struct {
	Message string
}

func (e AnalysisError) Error() string {
	return "analysis failed: " + e.Message
}

// IsAnalysisError checks if error is AnalysisError
func IsAnalysisError(err error) bool {
	var ae AnalysisError
	return errors.As(err, &ae)
}

// ConcurrencyError is returned when a version could not be allocated within the retry bound.
type ConcurrencyError struct {
	OwnerID  string
	Category Category
	Attempts int
}

func (e ConcurrencyError) Error() string {
	return fmt.Sprintf("version conflict for %s/%s after %d attempts", e.OwnerID, e.Category, e.Attempts)
}

// IsConcurrencyError checks if error is ConcurrencyError
func IsConcurrencyError(err error) bool {
	var ce ConcurrencyError
	return errors.As(err, &ce)
}

// BatchError reports a batch aborted at FailedIndex; Stored holds the documents persisted before it.
type BatchError struct {
	Stored      []*Document
	FailedIndex int
	Err         error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch aborted at index %d after %d stored: %v", e.FailedIndex, len(e.Stored), e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
