package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error types reported by the command-line surface. The parser itself never
// fails.
const (
	ErrInputRead        = "INPUT_READ_ERROR"
	ErrUnknownFormat    = "UNKNOWN_FORMAT"
	ErrEncode           = "ENCODE_ERROR"
	ErrSchemaValidation = "SCHEMA_VALIDATION_ERROR"
	ErrWatch            = "WATCH_ERROR"
)

// ShparseError represents a structured error with type and context
type ShparseError struct {
	Type    string
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *ShparseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if hint, ok := e.Context["suggestion"]; ok {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

func (e *ShparseError) Unwrap() error {
	return e.Cause
}

// New creates a new ShparseError
func New(errorType, message string) *ShparseError {
	return &ShparseError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new ShparseError wrapping an existing error
func Wrap(errorType, message string, cause error) *ShparseError {
	return &ShparseError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext attaches a key/value pair and returns e for chaining
func (e *ShparseError) WithContext(key string, value interface{}) *ShparseError {
	e.Context[key] = value
	return e
}

// GetContext looks up one context entry
func (e *ShparseError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewInputError reports a failure reading the command line source
func NewInputError(source string, cause error) *ShparseError {
	return Wrap(ErrInputRead, fmt.Sprintf("failed to read input from %s", source), cause).
		WithContext("source", source)
}

// NewUnknownFormatError reports an output format that is not registered.
// suggestion may be empty.
func NewUnknownFormatError(format string, known []string, suggestion string) *ShparseError {
	sorted := append([]string(nil), known...)
	sort.Strings(sorted)
	err := New(ErrUnknownFormat, fmt.Sprintf("unknown output format %q (available: %s)", format, strings.Join(sorted, ", "))).
		WithContext("format", format).
		WithContext("available_formats", sorted)
	if suggestion != "" {
		err.WithContext("suggestion", suggestion)
	}
	return err
}

// NewEncodeError reports a failure serializing a parse result
func NewEncodeError(format string, cause error) *ShparseError {
	return Wrap(ErrEncode, fmt.Sprintf("failed to encode %s output", format), cause).
		WithContext("format", format)
}

// NewSchemaError reports a JSON document that does not match the result schema
func NewSchemaError(cause error) *ShparseError {
	return Wrap(ErrSchemaValidation, "parse result does not match schema", cause)
}

// NewWatchError reports a failure watching an input file
func NewWatchError(path string, cause error) *ShparseError {
	return Wrap(ErrWatch, fmt.Sprintf("failed to watch %s", path), cause).
		WithContext("path", path)
}

// IsErrorType checks if err, or any error it wraps, is a ShparseError of
// errorType
func IsErrorType(err error, errorType string) bool {
	var shErr *ShparseError
	if errors.As(err, &shErr) {
		return shErr.Type == errorType
	}
	return false
}
