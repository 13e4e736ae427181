package errors

import "fmt"

// WrapWithOperation wraps an error with a "failed to <operation> <subject>" message
func WrapWithOperation(operation, subject string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, subject, err)
}

// WrapParse wraps an error with a "failed to parse" message
func WrapParse(item string, err error) error {
	return WrapWithOperation("parse", item, err)
}

// WrapRead wraps an error with a "failed to read" message
func WrapRead(item string, err error) error {
	return WrapWithOperation("read", item, err)
}

// WrapWrite wraps an error with a "failed to write" message
func WrapWrite(item string, err error) error {
	return WrapWithOperation("write", item, err)
}

// WrapScan wraps an error with a "failed to scan" message
func WrapScan(item string, err error) error {
	return WrapWithOperation("scan", item, err)
}
