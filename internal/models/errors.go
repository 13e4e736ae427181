package models

import "fmt"

// ErrorType classifies generator errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeParse
	ErrorTypeValidation
	ErrorTypeFileSystem
	ErrorTypeConfiguration
)

// String returns the string representation of the error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeFileSystem:
		return "filesystem"
	case ErrorTypeConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// GeneratorError represents an error that occurred during a generation run
type GeneratorError struct {
	Type        ErrorType              // type of error
	Message     string                 // error message
	Cause       error                  // underlying error cause
	Suggestions []string               // hints for fixing the error
	Context     map[string]interface{} // additional context information
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}
