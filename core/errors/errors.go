// Package errors provides standardized error types and helpers for the JuniperDocs codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a referenced resource was not found
	ErrNotFound = errors.New("not found")
	// ErrNoURI indicates a resolved target has no addressable destination
	// in the current output mode
	ErrNoURI = errors.New("no resolvable destination")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "document", "label", "object")
	Name     string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// NoURIError represents a target that resolved but cannot be linked to.
// The resolution pass treats it as "use the fallback content"; it is
// never surfaced to callers of the pass.
type NoURIError struct {
	FromDoc string // Document the link originates in
	ToDoc   string // Document the link points at
	Reason  string // Why no URI exists (e.g., "single-file output")
}

func (e *NoURIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no destination URI from %s to %s: %s", e.FromDoc, e.ToDoc, e.Reason)
	}
	return fmt.Sprintf("no destination URI from %s to %s", e.FromDoc, e.ToDoc)
}

func (e *NoURIError) Unwrap() error {
	return ErrNoURI
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "XML", "manifest", "target")
	Path    string // File path or input string, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, name string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Name:     name,
	}
}

// NewNoURI creates a NoURIError
func NewNoURI(fromDoc, toDoc, reason string) *NoURIError {
	return &NoURIError{
		FromDoc: fromDoc,
		ToDoc:   toDoc,
		Reason:  reason,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
