package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jamezp/wildfly-build-tools/internal/annotations"
	"github.com/jamezp/wildfly-build-tools/internal/errors"
	"github.com/jamezp/wildfly-build-tools/internal/models"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// Parser extracts wildfly:: annotations from Go source and builds the
// package metadata the generators consume. It is the symbol-inspection
// adapter for the Go toolchain: after parsing, the generators never touch
// source or AST values again.
type Parser struct {
	fileReader  *utils.FileReader
	annotations *annotations.Parser
	diagnostics *utils.DiagnosticSystem
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	return NewParserWithDiagnostics(utils.NewQuietDiagnostics())
}

// NewParserWithDiagnostics creates a parser that reports malformed
// annotations through the given diagnostic system instead of aborting
func NewParserWithDiagnostics(diagnostics *utils.DiagnosticSystem) *Parser {
	return &Parser{
		fileReader:  utils.NewFileReader(),
		annotations: annotations.NewParser(annotations.DefaultRegistry()),
		diagnostics: diagnostics,
	}
}

// ParseSource parses source code from a string, primarily for tests
func (p *Parser) ParseSource(filename, source, importPath string) (*models.PackageMetadata, error) {
	file, err := p.fileReader.ParseGoSource(filename, source)
	if err != nil {
		return nil, err
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
		ImportPath:  importPath,
	}

	p.processFile(file, filename, metadata)
	return metadata, nil
}

// ParseDirectory scans a single package directory for annotated declarations
func (p *Parser) ParseDirectory(path, importPath string) (*models.PackageMetadata, error) {
	entries, err := filepath.Glob(filepath.Join(path, "*.go"))
	if err != nil {
		return nil, errors.WrapScan(fmt.Sprintf("directory %s", path), err)
	}
	sort.Strings(entries)

	metadata := &models.PackageMetadata{
		PackagePath: path,
		ImportPath:  importPath,
	}

	for _, fileName := range entries {
		if strings.HasSuffix(fileName, "_test.go") {
			continue
		}
		file, err := p.fileReader.ParseGoFile(fileName)
		if err != nil {
			return nil, err
		}
		if metadata.PackageName == "" {
			metadata.PackageName = file.Name.Name
		} else if metadata.PackageName != file.Name.Name {
			// Secondary package clauses in one directory (stale files,
			// build-tag variants) are skipped rather than failing the scan
			p.diagnostics.Warn("skipping %s: package %s does not match %s", fileName, file.Name.Name, metadata.PackageName)
			continue
		}
		p.processFile(file, fileName, metadata)
	}

	return metadata, nil
}

// processFile walks one file's declarations and collects annotated types
func (p *Parser) processFile(file *ast.File, fileName string, metadata *models.PackageMetadata) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := genDecl.Doc
			if typeSpec.Doc != nil {
				doc = typeSpec.Doc
			}
			p.processTypeDecl(typeSpec, doc, fileName, metadata)
		}
	}
}

// processTypeDecl inspects one type declaration's annotations
func (p *Parser) processTypeDecl(typeSpec *ast.TypeSpec, doc *ast.CommentGroup, fileName string, metadata *models.PackageMetadata) {
	parsed := p.parseCommentGroup(doc, fileName)
	if len(parsed) == 0 {
		return
	}

	typeName := typeSpec.Name.Name
	_, isInterface := typeSpec.Type.(*ast.InterfaceType)

	var root *models.ResourceRoot

	for _, annotation := range parsed {
		switch annotation.Type {
		case annotations.ProviderAnnotation:
			ref := annotation.GetString("contract")
			metadata.Providers = append(metadata.Providers, models.ServiceProvider{
				TypeName:    typeName,
				BinaryName:  qualifiedName(metadata.ImportPath, typeName),
				ContractRef: ref,
				Contract:    resolveContract(metadata.ImportPath, ref),
				Concrete:    !isInterface,
				Location:    annotation.Location,
			})

		case annotations.PathAnnotation:
			if root == nil {
				root = &models.ResourceRoot{
					TypeName: typeName,
					Package:  metadata.ImportPath,
					Path:     annotation.GetString("path"),
					Location: annotation.Location,
				}
			} else {
				p.diagnostics.Warn("%s: type %s carries more than one path annotation, keeping %q",
					annotation.Location, typeName, root.Path)
			}

		case annotations.BundleAnnotation, annotations.DescriptionAnnotation:
			// Handled below once the root path is known
		}
	}

	if root == nil {
		// Descriptions and bundles are only meaningful on path-bearing types
		for _, annotation := range parsed {
			if annotation.Type == annotations.DescriptionAnnotation || annotation.Type == annotations.BundleAnnotation {
				p.diagnostics.Warn("%s: %s annotation on type %s without a path annotation is ignored",
					annotation.Location, annotation.Type, typeName)
			}
		}
		return
	}

	for _, annotation := range parsed {
		switch annotation.Type {
		case annotations.DescriptionAnnotation:
			root.Descriptions = append(root.Descriptions, models.Description{
				Value: annotation.GetString("value"),
				Name:  annotation.GetString("Name"),
				Path:  annotation.GetString("Path"),
				Key:   annotation.GetString("Key"),
			})
		case annotations.BundleAnnotation:
			if root.Bundle != nil {
				p.diagnostics.Warn("%s: type %s carries more than one bundle annotation", annotation.Location, typeName)
				continue
			}
			root.Bundle = &models.BundleSpec{
				Package: annotation.GetString("Package"),
				File:    annotation.GetString("File"),
			}
		}
	}

	if structType, ok := typeSpec.Type.(*ast.StructType); ok {
		p.processFields(structType, fileName, root)
	}

	metadata.Roots = append(metadata.Roots, *root)
}

// processFields collects path and description annotations from the fields
// of a resource root struct
func (p *Parser) processFields(structType *ast.StructType, fileName string, root *models.ResourceRoot) {
	for _, field := range structType.Fields.List {
		parsed := p.parseCommentGroup(field.Doc, fileName)
		if len(parsed) == 0 {
			continue
		}

		var paths []string
		var descriptions []models.Description

		for _, annotation := range parsed {
			switch annotation.Type {
			case annotations.PathAnnotation:
				paths = append(paths, annotation.GetString("path"))
			case annotations.DescriptionAnnotation:
				descriptions = append(descriptions, models.Description{
					Value: annotation.GetString("value"),
					Name:  annotation.GetString("Name"),
					Path:  annotation.GetString("Path"),
					Key:   annotation.GetString("Key"),
				})
			default:
				p.diagnostics.Warn("%s: %s annotation is not valid on a field", annotation.Location, annotation.Type)
			}
		}

		location := parsed[0].Location

		for _, name := range fieldNames(field) {
			root.Fields = append(root.Fields, models.ResourceField{
				Name:         name,
				Paths:        paths,
				Descriptions: descriptions,
				Location:     location,
			})
		}
	}
}

// parseCommentGroup extracts every annotation from a doc comment group.
// Malformed annotations produce a diagnostic and are skipped; they never
// abort the scan.
func (p *Parser) parseCommentGroup(doc *ast.CommentGroup, fileName string) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var parsed []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotationComment(comment.Text) {
			continue
		}
		position := p.fileReader.GetFileSet().Position(comment.Pos())
		location := annotations.SourceLocation{
			File:   fileName,
			Line:   position.Line,
			Column: position.Column,
		}
		annotation, err := p.annotations.ParseAnnotation(comment.Text, location)
		if err != nil {
			// The parse error carries its own source location
			if buildErr, ok := err.(*errors.BaseError); ok {
				p.diagnostics.Error("%s", buildErr.Format())
			} else {
				p.diagnostics.Error("%v", err)
			}
			continue
		}
		parsed = append(parsed, annotation)
	}
	return parsed
}

// fieldNames returns the declared names of a struct field; embedded fields
// use the embedded type's name
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		if name := embeddedTypeName(field.Type); name != "" {
			return []string{name}
		}
		return nil
	}
	names := make([]string, 0, len(field.Names))
	for _, ident := range field.Names {
		names = append(names, ident.Name)
	}
	return names
}

// embeddedTypeName resolves the name of an embedded field's type
func embeddedTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

// qualifiedName builds the fully qualified id for a type in a package
func qualifiedName(importPath, typeName string) string {
	if importPath == "" {
		return typeName
	}
	return importPath + "." + typeName
}

// resolveContract resolves a contract reference against the declaring
// package: a bare name refers to the same package, anything containing a
// '.' is already import-path qualified
func resolveContract(importPath, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, ".") {
		return ref
	}
	return qualifiedName(importPath, ref)
}
