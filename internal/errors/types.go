package errors

import (
	"fmt"
	"strings"
)

// BuildError defines the base interface for all generator errors
type BuildError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	// Core error types
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode
	SchemaErrorCode

	// Generation error types
	GenerationErrorCode
	FileSystemErrorCode

	// Environment error types
	ConfigurationErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ValidationErrorCode:
		return "ValidationError"
	case SchemaErrorCode:
		return "SchemaError"
	case GenerationErrorCode:
		return "GenerationError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the BuildError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	message := e.Message
	if e.Cause != nil {
		message = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Loc.IsEmpty() {
		return message
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), message)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the context data
func (e *BaseError) Context() map[string]interface{} {
	return e.ContextData
}

// Suggestions returns the list of hints
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying cause
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Format returns a detailed, multi-line rendering of the error including
// suggestions, suitable for verbose diagnostic output
func (e *BaseError) Format() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Error()))
	for _, hint := range e.Hints {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}

var _ BuildError = (*BaseError)(nil)

// NewValidationError creates a validation error at the given location
func NewValidationError(loc SourceLocation, format string, args ...interface{}) *BaseError {
	return &BaseError{
		Code:    ValidationErrorCode,
		Message: fmt.Sprintf(format, args...),
		Loc:     loc,
	}
}

// NewSyntaxError creates a syntax error at the given location
func NewSyntaxError(loc SourceLocation, cause error, format string, args ...interface{}) *BaseError {
	return &BaseError{
		Code:    SyntaxErrorCode,
		Message: fmt.Sprintf(format, args...),
		Loc:     loc,
		Cause:   cause,
	}
}

// NewSchemaError creates a schema violation error at the given location
func NewSchemaError(loc SourceLocation, format string, args ...interface{}) *BaseError {
	return &BaseError{
		Code:    SchemaErrorCode,
		Message: fmt.Sprintf(format, args...),
		Loc:     loc,
	}
}

// NewFileSystemError creates a file system error for the given path
func NewFileSystemError(path string, cause error, format string, args ...interface{}) *BaseError {
	return &BaseError{
		Code:        FileSystemErrorCode,
		Message:     fmt.Sprintf(format, args...),
		Cause:       cause,
		ContextData: map[string]interface{}{"path": path},
	}
}
