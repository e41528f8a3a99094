package errors_utils

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	CodeRequired     = "REQUIRED"
	CodeInvalidValue = "INVALID_VALUE"
	CodeInvalidEmail = "INVALID_EMAIL"
	CodeNegative     = "NEGATIVE_AMOUNT"
)

// ValidationError is returned before any write when caller input is missing
// or malformed.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

type NotFoundError struct {
	Entity string    `json:"entity"`
	ID     uuid.UUID `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// DependencyError wraps a failure of the storage or identity collaborator.
// It is propagated as-is, nothing retries it.
type DependencyError struct {
	Operation string
	Err       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewDependencyError(operation string, err error) *DependencyError {
	return &DependencyError{Operation: operation, Err: err}
}
