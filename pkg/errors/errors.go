// Package errors provides custom error types for the creddedupe system.
// These errors enable programmatic error checking with errors.Is/errors.As
// and carry enough context (provider, row index, column names) to attribute
// failures to the exact place in an import file where they happened.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the creddedupe system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingColumn indicates that a row lacks a column its provider requires
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyInput indicates that an input file or row set was empty
	ErrEmptyInput = errors.New("empty input")
)

// UnknownProviderError indicates a lookup for a provider id that is not registered.
type UnknownProviderError struct {
	ID string
}

// Error implements the error interface
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("provider %q not registered", e.ID)
}

// Is implements errors.Is support
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrNotFound
}

// NewUnknownProviderError creates a new UnknownProviderError
func NewUnknownProviderError(id string) *UnknownProviderError {
	return &UnknownProviderError{ID: id}
}

// DuplicateProviderError indicates a second registration under an id already in use.
type DuplicateProviderError struct {
	ID string
}

// Error implements the error interface
func (e *DuplicateProviderError) Error() string {
	return fmt.Sprintf("provider %q already registered", e.ID)
}

// Is implements errors.Is support
func (e *DuplicateProviderError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewDuplicateProviderError creates a new DuplicateProviderError
func NewDuplicateProviderError(id string) *DuplicateProviderError {
	return &DuplicateProviderError{ID: id}
}

// MissingColumnError indicates an import row lacks one or more columns the
// provider requires. Row is the zero-based index of the row within the file,
// or -1 when the error applies to the header itself.
type MissingColumnError struct {
	Provider string
	Row      int
	Columns  []string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	cols := strings.Join(e.Columns, ", ")
	if e.Row < 0 {
		return fmt.Sprintf("provider %s: missing required columns: %s", e.Provider, cols)
	}
	return fmt.Sprintf("provider %s: row %d missing required columns: %s", e.Provider, e.Row, cols)
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError
func NewMissingColumnError(provider string, row int, columns ...string) *MissingColumnError {
	return &MissingColumnError{Provider: provider, Row: row, Columns: columns}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "json", "yaml", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ImportError aggregates the row-attributed errors from a single import run.
// Rows that fail are skipped, not silently dropped: every failure is recorded
// here while the rest of the file proceeds.
type ImportError struct {
	Provider string
	Errs     []error
}

// Error implements the error interface
func (e *ImportError) Error() string {
	if len(e.Errs) == 1 {
		return fmt.Sprintf("import from %s: %v", e.Provider, e.Errs[0])
	}
	return fmt.Sprintf("import from %s: %d rows failed (first: %v)", e.Provider, len(e.Errs), e.Errs[0])
}

// Unwrap implements the multi-error Unwrap convention
func (e *ImportError) Unwrap() []error {
	return e.Errs
}

// NewImportError creates a new ImportError, or returns nil if errs is empty
func NewImportError(provider string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ImportError{Provider: provider, Errs: errs}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsMissingColumn checks if an error is a missing required column error
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
