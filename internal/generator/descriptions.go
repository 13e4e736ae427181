package generator

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/magiconair/properties"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
	"github.com/jamezp/wildfly-build-tools/internal/models"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// DefaultBundleFile is the bundle file name used when the root type
// carries no bundle annotation.
const DefaultBundleFile = "LocalDescriptions.properties"

// BundleHeader is the comment written at the top of every generated
// bundle. The cleaner uses it to tell generated bundles from hand-written
// properties files.
const BundleHeader = "Generated description file"

// DescriptionEntries is an insertion-ordered key/value mapping with
// last-write-wins semantics on key collision.
type DescriptionEntries struct {
	keys   []string
	values map[string]string
}

// NewDescriptionEntries creates an empty mapping
func NewDescriptionEntries() *DescriptionEntries {
	return &DescriptionEntries{values: make(map[string]string)}
}

// Put sets a key, overwriting any previous value
func (e *DescriptionEntries) Put(key, value string) {
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value for a key
func (e *DescriptionEntries) Get(key string) (string, bool) {
	value, exists := e.values[key]
	return value, exists
}

// Keys returns the keys in first-insertion order
func (e *DescriptionEntries) Keys() []string {
	return e.keys
}

// Len returns the number of entries
func (e *DescriptionEntries) Len() int {
	return len(e.keys)
}

// DescriptionGenerator aggregates description annotations into a
// properties bundle, merging with any bundle already present under the
// output root.
type DescriptionGenerator struct {
	filer       Filer
	diagnostics *utils.DiagnosticSystem
}

// NewDescriptionGenerator creates a description generator
func NewDescriptionGenerator(filer Filer, diagnostics *utils.DiagnosticSystem) *DescriptionGenerator {
	return &DescriptionGenerator{
		filer:       filer,
		diagnostics: diagnostics,
	}
}

// Aggregate composes description keys for every root type. All roots merge
// into one mapping; the FIRST root determines the bundle target. Multiple
// independent roots per round are not separately supported, matching the
// behavior downstream consumers already depend on.
func (g *DescriptionGenerator) Aggregate(roots []models.ResourceRoot) (*DescriptionEntries, *models.ResourceRoot) {
	if len(roots) == 0 {
		return NewDescriptionEntries(), nil
	}

	entries := NewDescriptionEntries()
	first := roots[0]

	for i, root := range roots {
		if i > 0 {
			g.diagnostics.Warn("%s: descriptions of %s merge into the bundle of %s",
				root.Location, root.TypeName, first.TypeName)
		}
		g.aggregateRoot(root, entries)
	}

	return entries, &first
}

// aggregateRoot emits the type-level and field-level entries of one root
func (g *DescriptionGenerator) aggregateRoot(root models.ResourceRoot, entries *DescriptionEntries) {
	for _, description := range root.Descriptions {
		if description.Key != "" {
			entries.Put(description.Key, description.Value)
			continue
		}
		key := root.Path
		key = appendSegment(key, description.Name)
		entries.Put(key, description.Value)
	}

	for _, field := range root.Fields {
		for _, description := range field.Descriptions {
			if description.Key != "" {
				entries.Put(description.Key, description.Value)
				continue
			}
			// A description without its own path sits directly under the
			// root path; the field's standalone path annotations do not
			// multiply it
			key := root.Path
			key = appendSegment(key, description.Path)
			key = appendName(key, description, field.Name)
			entries.Put(key, description.Value)
		}
	}
}

// BundleTarget resolves the relative path of the bundle file for a root
func BundleTarget(root *models.ResourceRoot) string {
	packageDir := strings.TrimSuffix(root.Package, "/")
	fileName := DefaultBundleFile
	if root.Bundle != nil {
		if root.Bundle.Package != "" {
			packageDir = strings.Trim(root.Bundle.Package, "/")
		}
		if root.Bundle.File != "" {
			fileName = root.Bundle.File
		}
	}
	return path.Join(packageDir, fileName)
}

// Write merges the entries over any existing bundle (new values win) and
// rewrites the bundle in full with the generated header. I/O failures are
// reported, never fatal. Returns the relative path and whether the bundle
// was written.
func (g *DescriptionGenerator) Write(root *models.ResourceRoot, entries *DescriptionEntries) (string, bool) {
	if root == nil {
		return "", false
	}

	relPath := BundleTarget(root)

	merged := g.loadExisting(relPath)
	for _, key := range entries.Keys() {
		value, _ := entries.Get(key)
		if _, _, err := merged.Set(key, value); err != nil {
			g.diagnostics.Error("failed to set %s in bundle %s: %v", key, relPath, err)
		}
	}

	if err := g.writeBundle(relPath, merged); err != nil {
		g.diagnostics.Error("%v", errors.WrapWrite(fmt.Sprintf("bundle %s", relPath), err))
		return relPath, false
	}
	return relPath, true
}

// loadExisting reads a pre-existing bundle; a missing file yields an empty
// properties set, any other failure is reported and also yields empty
func (g *DescriptionGenerator) loadExisting(relPath string) *properties.Properties {
	empty := properties.NewProperties()
	empty.DisableExpansion = true

	reader, err := g.filer.GetResource(relPath)
	if err != nil {
		if !IsNotExist(err) {
			g.diagnostics.Error("failed to read bundle %s: %v", relPath, err)
		}
		return empty
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		g.diagnostics.Error("failed to read bundle %s: %v", relPath, err)
		return empty
	}

	loaded, err := properties.Load(content, properties.UTF8)
	if err != nil {
		g.diagnostics.Error("failed to parse bundle %s: %v", relPath, err)
		return empty
	}
	loaded.DisableExpansion = true
	return loaded
}

// writeBundle rewrites the bundle file with the merged properties
func (g *DescriptionGenerator) writeBundle(relPath string, merged *properties.Properties) error {
	writer, err := g.filer.CreateResource(relPath)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "# %s\n", BundleHeader); err != nil {
		writer.Close()
		return err
	}
	if _, err := merged.Write(writer, properties.UTF8); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// appendSegment appends a dotted segment: empty segments are a no-op and a
// separator is inserted unless the key already ends in '.'
func appendSegment(key, segment string) string {
	if segment == "" {
		return key
	}
	if key == "" || strings.HasSuffix(key, ".") {
		return key + segment
	}
	return key + "." + segment
}

// appendName appends the description's name segment, deriving it from the
// field identifier when no override is present: lower-cased with
// underscores replaced by hyphens
func appendName(key string, description models.Description, fieldName string) string {
	value := description.Name
	if value == "" {
		value = strings.ReplaceAll(strings.ToLower(fieldName), "_", "-")
	}
	return appendSegment(key, value)
}
