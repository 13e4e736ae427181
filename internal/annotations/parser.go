package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
)

// Prefix is the directive marker every annotation comment carries
const Prefix = "wildfly::"

// Parser parses //wildfly:: annotation comments against registered schemas
type Parser struct {
	body     *participle.Parser[annotationBody]
	registry AnnotationRegistry
}

// annotationBody is the grammar for everything following the annotation
// type: positional arguments first, then -Name=value parameters
type annotationBody struct {
	Positional []string    `parser:"( @String | @Atom )*"`
	Params     []paramItem `parser:"@@*"`
}

type paramItem struct {
	Name  string  `parser:"Dash @Atom"`
	Value *string `parser:"( Equals ( @String | @Atom ) )?"`
}

// NewParser creates a new annotation parser using the given schema registry
func NewParser(registry AnnotationRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Atom", Pattern: `[a-zA-Z0-9_][a-zA-Z0-9_./\-]*`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	body := participle.MustBuild[annotationBody](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{
		body:     body,
		registry: registry,
	}
}

// IsAnnotationComment reports whether a comment line carries a wildfly::
// directive. It does not validate the directive.
func IsAnnotationComment(comment string) bool {
	content, ok := stripCommentMarker(comment)
	if !ok {
		return false
	}
	return strings.HasPrefix(content, Prefix)
}

// ParseAnnotation parses a single annotation comment line
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	content, ok := stripCommentMarker(comment)
	if !ok {
		return nil, errors.NewSyntaxError(location, nil, "annotation must start with '//'")
	}
	if !strings.HasPrefix(content, Prefix) {
		return nil, errors.NewSyntaxError(location, nil, "annotation must contain '%s' prefix", Prefix)
	}
	content = strings.TrimPrefix(content, Prefix)

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return nil, errors.NewSyntaxError(location, nil, "empty annotation")
	}

	annotationType, err := ParseAnnotationType(fields[0])
	if err != nil {
		syntaxErr := errors.NewSyntaxError(location, nil, "unknown annotation type '%s'", fields[0])
		syntaxErr.Hints = []string{"known types: provider, path, description, bundle"}
		return nil, syntaxErr
	}
	if p.registry != nil && !p.registry.IsRegistered(annotationType) {
		return nil, errors.NewSchemaError(location, "annotation type '%s' is not registered in schema registry", fields[0])
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]string),
		Location:   location,
		Raw:        comment,
	}

	remaining := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(content), fields[0]))
	if remaining != "" {
		body, err := p.body.ParseString(location.File, remaining)
		if err != nil {
			return nil, errors.NewSyntaxError(location, err, "failed to parse annotation arguments")
		}
		if err := p.applyBody(parsed, body); err != nil {
			return nil, err
		}
	}

	if p.registry != nil {
		if err := p.validateAgainstSchema(parsed); err != nil {
			return nil, err
		}
	}

	return parsed, nil
}

// applyBody maps positional arguments and named parameters onto the
// annotation's parameter map
func (p *Parser) applyBody(parsed *ParsedAnnotation, body *annotationBody) error {
	var positionalNames []string
	if p.registry != nil {
		schema, err := p.registry.GetSchema(parsed.Type)
		if err != nil {
			return err
		}
		positionalNames = schema.Positional
	}

	if len(body.Positional) > len(positionalNames) {
		return errors.NewSchemaError(parsed.Location, "annotation type %s accepts %d positional argument(s), got %d",
			parsed.Type, len(positionalNames), len(body.Positional))
	}
	for i, value := range body.Positional {
		parsed.Parameters[positionalNames[i]] = unquote(value)
	}

	for _, item := range body.Params {
		if item.Value == nil {
			return errors.NewSchemaError(parsed.Location, "parameter '%s' requires a value", item.Name)
		}
		parsed.Parameters[item.Name] = unquote(*item.Value)
	}

	return nil
}

// validateAgainstSchema validates the parsed annotation against its schema
func (p *Parser) validateAgainstSchema(annotation *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return errors.NewSchemaError(annotation.Location, "no schema found for annotation type: %s", annotation.Type)
	}

	for paramName, paramValue := range annotation.Parameters {
		paramSpec, exists := schema.Parameters[paramName]
		if !exists {
			return errors.NewSchemaError(annotation.Location, "unknown parameter '%s' for annotation type %s", paramName, annotation.Type)
		}

		if paramSpec.Validator != nil {
			if err := paramSpec.Validator(paramValue); err != nil {
				return errors.NewSchemaError(annotation.Location, "parameter '%s' validation failed: %v", paramName, err)
			}
		}
	}

	for paramName, paramSpec := range schema.Parameters {
		if paramSpec.Required {
			if _, exists := annotation.Parameters[paramName]; !exists {
				schemaErr := errors.NewSchemaError(annotation.Location, "missing required parameter '%s' for annotation type %s", paramName, annotation.Type)
				if len(schema.Examples) > 0 {
					schemaErr.Hints = []string{"example: " + schema.Examples[0]}
				}
				return schemaErr
			}
		}
	}

	return nil
}

// stripCommentMarker removes the leading // and surrounding whitespace
func stripCommentMarker(comment string) (string, bool) {
	comment = strings.TrimSpace(comment)
	if !strings.HasPrefix(comment, "//") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(comment, "//")), true
}

// unquote strips surrounding double quotes and unescapes the content
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, `\"`, `"`)
		s = strings.ReplaceAll(s, `\\`, `\`)
	}
	return s
}
