package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestSourceLocationString(t *testing.T) {
	tests := []struct {
		loc  SourceLocation
		want string
	}{
		{SourceLocation{}, "unknown location"},
		{SourceLocation{File: "a.go"}, "a.go"},
		{SourceLocation{File: "a.go", Line: 3}, "a.go:3"},
		{SourceLocation{File: "a.go", Line: 3, Column: 7}, "a.go:3:7"},
	}

	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBaseErrorMessage(t *testing.T) {
	err := NewValidationError(SourceLocation{File: "a.go", Line: 3}, "type %s is broken", "Foo")
	if got := err.Error(); got != "a.go:3: type Foo is broken" {
		t.Errorf("unexpected message: %q", got)
	}
	if err.ErrorCode() != ValidationErrorCode {
		t.Errorf("unexpected code: %v", err.ErrorCode())
	}
}

func TestBaseErrorIncludesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewSyntaxError(SourceLocation{File: "a.go", Line: 1, Column: 1}, cause, "bad annotation")

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
}

func TestBaseErrorFormatIncludesHints(t *testing.T) {
	err := NewSchemaError(SourceLocation{File: "a.go", Line: 1}, "missing parameter")
	err.Hints = []string{"example: //wildfly::provider Formatter"}

	formatted := err.Format()
	if !strings.Contains(formatted, "[SchemaError]") {
		t.Errorf("expected code tag, got %q", formatted)
	}
	if !strings.Contains(formatted, "hint: example:") {
		t.Errorf("expected hint line, got %q", formatted)
	}
}

func TestWrappersPreserveCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")

	err := WrapRead("registry file", cause)
	if got := err.Error(); got != "failed to read registry file: disk on fire" {
		t.Errorf("unexpected message: %q", got)
	}

	for _, wrapped := range []error{
		WrapParse("x", cause),
		WrapWrite("x", cause),
		WrapScan("x", cause),
	} {
		if !strings.Contains(wrapped.Error(), "disk on fire") {
			t.Errorf("expected cause preserved, got %q", wrapped.Error())
		}
	}
}

func TestNewFileSystemErrorContext(t *testing.T) {
	err := NewFileSystemError("/tmp/out/file", fmt.Errorf("denied"), "failed to read file")
	if err.Context()["path"] != "/tmp/out/file" {
		t.Errorf("expected path in context, got %v", err.Context())
	}
}
