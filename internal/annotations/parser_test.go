package annotations

import (
	"strings"
	"testing"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	registry := NewRegistry()
	if err := RegisterBuiltinSchemas(registry); err != nil {
		t.Fatalf("failed to register builtin schemas: %v", err)
	}
	return NewParser(registry)
}

func TestParseProviderAnnotation(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 10, Column: 1}

	annotation, err := parser.ParseAnnotation("//wildfly::provider Formatter", location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if annotation.Type != ProviderAnnotation {
		t.Errorf("expected ProviderAnnotation, got %v", annotation.Type)
	}
	if annotation.Parameters["contract"] != "Formatter" {
		t.Errorf("expected contract='Formatter', got %q", annotation.Parameters["contract"])
	}
}

func TestParseProviderAnnotationQualifiedContract(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	annotation, err := parser.ParseAnnotation("//wildfly::provider github.com/example/app/spi.Formatter", location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := annotation.Parameters["contract"]; got != "github.com/example/app/spi.Formatter" {
		t.Errorf("unexpected contract reference: %q", got)
	}
}

func TestParseProviderAnnotationMissingContract(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	_, err := parser.ParseAnnotation("//wildfly::provider", location)
	if err == nil {
		t.Fatal("expected error for missing contract")
	}
	if !strings.Contains(err.Error(), "contract") {
		t.Errorf("expected error to mention the contract parameter, got: %v", err)
	}
}

func TestParseDescriptionAnnotation(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 5, Column: 1}

	tests := []struct {
		name    string
		input   string
		value   string
		nameArg string
		keyArg  string
	}{
		{
			name:  "plain value",
			input: `//wildfly::description "The maximum size"`,
			value: "The maximum size",
		},
		{
			name:    "name override",
			input:   `//wildfly::description "The maximum size" -Name=max`,
			value:   "The maximum size",
			nameArg: "max",
		},
		{
			name:   "key override",
			input:  `//wildfly::description "The maximum size" -Key=server.max-size`,
			value:  "The maximum size",
			keyArg: "server.max-size",
		},
		{
			name:  "escaped quote",
			input: `//wildfly::description "A \"quoted\" value"`,
			value: `A "quoted" value`,
		},
		{
			name:  "unquoted single word",
			input: `//wildfly::description enabled`,
			value: "enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotation, err := parser.ParseAnnotation(tt.input, location)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if annotation.Parameters["value"] != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, annotation.Parameters["value"])
			}
			if annotation.GetString("Name") != tt.nameArg {
				t.Errorf("expected Name %q, got %q", tt.nameArg, annotation.GetString("Name"))
			}
			if annotation.GetString("Key") != tt.keyArg {
				t.Errorf("expected Key %q, got %q", tt.keyArg, annotation.GetString("Key"))
			}
		})
	}
}

func TestParseBundleAnnotation(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 3, Column: 1}

	annotation, err := parser.ParseAnnotation(
		"//wildfly::bundle -Package=org/example/server -File=ServerDescriptions.properties", location)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := annotation.GetString("Package"); got != "org/example/server" {
		t.Errorf("unexpected Package: %q", got)
	}
	if got := annotation.GetString("File"); got != "ServerDescriptions.properties" {
		t.Errorf("unexpected File: %q", got)
	}
}

func TestFlexibleCommentPrefix(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	tests := []struct {
		name  string
		input string
	}{
		{"standard", "//wildfly::path server"},
		{"space after slashes", "// wildfly::path server"},
		{"multiple spaces", "//  wildfly::path server"},
		{"tab after slashes", "//\twildfly::path server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotation, err := parser.ParseAnnotation(tt.input, location)
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", tt.name, err)
			}
			if annotation.Parameters["path"] != "server" {
				t.Errorf("expected path='server', got %q", annotation.Parameters["path"])
			}
		})
	}
}

func TestParseAnnotationRejectsUnknownType(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	_, err := parser.ParseAnnotation("//wildfly::frobnicate x", location)
	if err == nil {
		t.Fatal("expected error for unknown annotation type")
	}
}

func TestParseAnnotationRejectsUnknownParameter(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	_, err := parser.ParseAnnotation(`//wildfly::description "text" -Bogus=1`, location)
	if err == nil {
		t.Fatal("expected error for unknown parameter")
	}
	if !strings.Contains(err.Error(), "Bogus") {
		t.Errorf("expected error to name the unknown parameter, got: %v", err)
	}
}

func TestParseAnnotationRejectsExtraPositional(t *testing.T) {
	parser := testParser(t)
	location := SourceLocation{File: "test.go", Line: 1, Column: 1}

	_, err := parser.ParseAnnotation("//wildfly::path server extra", location)
	if err == nil {
		t.Fatal("expected error for extra positional argument")
	}
}

func TestIsAnnotationComment(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"//wildfly::provider Formatter", true},
		{"// wildfly::path server", true},
		{"// just a comment", false},
		{"//wildfly:: broken", true},
		{"wildfly::provider Formatter", false},
	}

	for _, tt := range tests {
		if got := IsAnnotationComment(tt.input); got != tt.want {
			t.Errorf("IsAnnotationComment(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
