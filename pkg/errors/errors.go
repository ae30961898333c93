// Package errors provides the error taxonomy for the catalog client.
// The three kinds matter to callers for different reasons: transport
// errors are retryable, service errors are retryable for idempotent
// queries, and not-found is definitive and must never be retried.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Aliases for the standard library error inspection helpers so callers
// can depend on this package alone.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Common sentinel errors for the catalog client.
var (
	// ErrNotFound indicates a definitive absence: the service answered
	// and reported no entity for the requested identifier.
	ErrNotFound = errors.New("not found")

	// ErrTransport indicates a network or connection failure before a
	// usable response arrived.
	ErrTransport = errors.New("transport failure")

	// ErrService indicates the service responded but reported
	// field-level errors.
	ErrService = errors.New("service error")
)

// NotFoundError reports a single lookup that returned no entity.
// Distinguished from ServiceError so the caching layer can skip retries
// and the view layer can render a distinct "not found" state.
type NotFoundError struct {
	Resource string
	ID       int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ServiceError carries the field-level errors reported by the service.
// The message is the concatenation of all reported messages, joined
// by ", ".
type ServiceError struct {
	Operation string
	Messages  []string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := strings.Join(e.Messages, ", ")
	if e.Operation != "" {
		return fmt.Sprintf("service error in %s: %s", e.Operation, msg)
	}
	return "service error: " + msg
}

// Is implements errors.Is support.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// NewServiceError creates a new ServiceError from reported messages.
func NewServiceError(operation string, messages []string) *ServiceError {
	return &ServiceError{Operation: operation, Messages: messages}
}

// TransportError wraps a network-level failure.
type TransportError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("transport failure in %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a new TransportError.
func NewTransportError(operation string, err error) *TransportError {
	return &TransportError{Operation: operation, Err: err}
}

// Retryable reports whether an error may be retried. Transport and
// service errors are retryable for the idempotent queries this client
// issues; a definitive not-found is not, since retrying cannot change
// an absence.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrService)
}

// WrapIO wraps an I/O error with operation context.
func WrapIO(op, target string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", op, target, err)
}

// WrapParse wraps a parse error with format and target context.
func WrapParse(format, target string, err error) error {
	return fmt.Errorf("failed to parse %s %s: %w", format, target, err)
}
