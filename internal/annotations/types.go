package annotations

import (
	"fmt"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
)

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	ProviderAnnotation AnnotationType = iota
	PathAnnotation
	DescriptionAnnotation
	BundleAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ProviderAnnotation:
		return "provider"
	case PathAnnotation:
		return "path"
	case DescriptionAnnotation:
		return "description"
	case BundleAnnotation:
		return "bundle"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "provider":
		return ProviderAnnotation, nil
	case "path":
		return PathAnnotation, nil
	case "description":
		return DescriptionAnnotation, nil
	case "bundle":
		return BundleAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation identifies where an annotation appears in source
type SourceLocation = errors.SourceLocation

// ParsedAnnotation represents a fully parsed annotation
type ParsedAnnotation struct {
	Type       AnnotationType    // Annotation type enum
	Parameters map[string]string // Named and positional parameter values
	Location   SourceLocation    // Source location
	Raw        string            // Original annotation text
}

// GetString returns a parameter value with an optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		return value
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Required    bool               // Whether parameter is required
	Positional  bool               // Whether the parameter is filled from a positional argument
	Description string             // Parameter description
	Validator   func(string) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Positional  []string                 // Parameter names filled from positional arguments, in order
	Parameters  map[string]ParameterSpec // Parameter specifications
	Examples    []string                 // Usage examples
}
