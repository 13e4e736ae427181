package annotations

import (
	"fmt"
	"strings"
)

// Built-in annotation schemas

// ProviderAnnotationSchema defines the schema for //wildfly::provider annotations
var ProviderAnnotationSchema = AnnotationSchema{
	Type:        ProviderAnnotation,
	Description: "Registers a concrete type as a service provider for a contract interface",
	Positional:  []string{"contract"},
	Parameters: map[string]ParameterSpec{
		"contract": {
			Required:    true,
			Positional:  true,
			Description: "Contract type reference: 'Name' for the same package or 'import/path.Name'",
			Validator: func(v string) error {
				if strings.ContainsAny(v, " \t") {
					return fmt.Errorf("contract reference must not contain whitespace, got '%s'", v)
				}
				name := v
				if idx := strings.LastIndex(v, "."); idx >= 0 {
					name = v[idx+1:]
				}
				if name == "" {
					return fmt.Errorf("contract reference has no type name: '%s'", v)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//wildfly::provider Formatter",
		"//wildfly::provider github.com/example/app/spi.Formatter",
	},
}

// PathAnnotationSchema defines the schema for //wildfly::path annotations
var PathAnnotationSchema = AnnotationSchema{
	Type:        PathAnnotation,
	Description: "Declares the dotted resource path for a type or extends it for a field",
	Positional:  []string{"path"},
	Parameters: map[string]ParameterSpec{
		"path": {
			Required:    true,
			Positional:  true,
			Description: "Dotted path segment, e.g. 'server.http' (a trailing '.' is allowed)",
			Validator: func(v string) error {
				if v == "" {
					return fmt.Errorf("path must not be empty")
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//wildfly::path server",
		"//wildfly::path server.http",
	},
}

// DescriptionAnnotationSchema defines the schema for //wildfly::description annotations
var DescriptionAnnotationSchema = AnnotationSchema{
	Type:        DescriptionAnnotation,
	Description: "Attaches a human-readable description to a type or field",
	Positional:  []string{"value"},
	Parameters: map[string]ParameterSpec{
		"value": {
			Required:    true,
			Positional:  true,
			Description: "The description text, quoted if it contains spaces",
		},
		"Name": {
			Description: "Overrides the derived name segment of the generated key",
		},
		"Path": {
			Description: "Extends the root path for this description only",
		},
		"Key": {
			Description: "Full key override; bypasses path/name composition entirely",
		},
	},
	Examples: []string{
		`//wildfly::description "The maximum allowed size"`,
		`//wildfly::description "The maximum allowed size" -Name=max`,
		`//wildfly::description "The maximum allowed size" -Path=limits`,
		`//wildfly::description "The maximum allowed size" -Key=server.max-size`,
	},
}

// BundleAnnotationSchema defines the schema for //wildfly::bundle annotations
var BundleAnnotationSchema = AnnotationSchema{
	Type:        BundleAnnotation,
	Description: "Names the target properties bundle for a resource path root type",
	Parameters: map[string]ParameterSpec{
		"Package": {
			Description: "Target package directory for the bundle, e.g. 'org/example/server'",
		},
		"File": {
			Description: "Bundle file name (defaults to LocalDescriptions.properties)",
			Validator: func(v string) error {
				if strings.ContainsAny(v, "/\\") {
					return fmt.Errorf("bundle file name must not contain path separators, got '%s'", v)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//wildfly::bundle -Package=org/example/server -File=ServerDescriptions.properties",
		"//wildfly::bundle -File=ServerDescriptions.properties",
	},
}

// RegisterBuiltinSchemas registers all built-in annotation schemas with the registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	schemas := map[AnnotationType]AnnotationSchema{
		ProviderAnnotation:    ProviderAnnotationSchema,
		PathAnnotation:        PathAnnotationSchema,
		DescriptionAnnotation: DescriptionAnnotationSchema,
		BundleAnnotation:      BundleAnnotationSchema,
	}

	for annotationType, schema := range schemas {
		if err := registry.Register(annotationType, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", annotationType, err)
		}
	}

	return nil
}
