// Package services provides the designer session that front ends drive.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/hrflow/pkg/designer"
	"github.com/dukex/hrflow/pkg/models"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Not found errors (404).
	ErrNodeNotFound = designer.ErrNodeNotFound
	ErrEdgeNotFound = errors.New("edge not found")

	// Validation Errors (400 Bad Request).
	ErrUnknownNodeType   = models.ErrUnknownNodeType
	ErrPatchKindMismatch = models.ErrPatchKindMismatch
	ErrMalformedGraph    = designer.ErrMalformedGraph
	ErrInvalidNodeData   = designer.ErrInvalidNodeData
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownNodeType) ||
		errors.Is(err, ErrPatchKindMismatch) ||
		errors.Is(err, ErrInvalidNodeData) ||
		errors.Is(err, ErrMalformedGraph)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}

func notFound(op, id string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%v: %s", err, id),
		Err:     err,
	}
}
