package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound is a missing group, user, post or follow edge
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation is rejected user input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal is anything the caller cannot fix
	ErrorTypeInternal ErrorType = "internal"
)

// Sentinels for errors.Is checks.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by error type.
func (e *BaseError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Type == ErrorTypeNotFound
	case ErrValidation:
		return e.Type == ErrorTypeValidation
	}
	return false
}

// NotFoundError is returned when a referenced record does not exist
type NotFoundError struct {
	*BaseError
	Resource string
	Key      string
}

// NewNotFound builds a NotFoundError for resource identified by key.
func NewNotFound(resource, key string, err error) *NotFoundError {
	return &NotFoundError{
		BaseError: &BaseError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("%s not found: %s", resource, key),
			Err:     err,
		},
		Resource: resource,
		Key:      key,
	}
}

// ValidationError carries one message per invalid field.
type ValidationError struct {
	*BaseError
	Fields map[string]string
}

// NewValidation builds a ValidationError from field messages.
func NewValidation(fields map[string]string) *ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &ValidationError{
		BaseError: &BaseError{
			Type:    ErrorTypeValidation,
			Message: "invalid " + strings.Join(names, ", "),
		},
		Fields: fields,
	}
}

// NewInternal wraps an unexpected failure.
func NewInternal(message string, err error) *BaseError {
	return &BaseError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// IsNotFound reports whether err is (or wraps) a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
