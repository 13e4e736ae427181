package cli

import (
	"fmt"
	"time"

	"github.com/jamezp/wildfly-build-tools/internal/generator"
	"github.com/jamezp/wildfly-build-tools/internal/models"
	"github.com/jamezp/wildfly-build-tools/internal/parser"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// GenerationSummary captures what one run produced
type GenerationSummary struct {
	PackagesProcessed  int
	ProvidersFound     int
	InvalidProviders   int
	RootsFound         int
	DescriptionEntries int
	RegistryFiles      []string
	BundleFile         string
}

// oracleFactory builds the assignability oracle for a run. Swappable so
// tests do not need a loadable module on disk.
type oracleFactory func(rootDir string, patterns []string) (parser.TypeOracle, error)

// Generator coordinates the CLI generation process: module resolution,
// directory scanning, annotation parsing, and both aggregators.
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         *parser.Parser
	diagnostics    *utils.DiagnosticSystem
	newOracle      oracleFactory
	customModule   string
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParserWithDiagnostics(diagnostics),
		diagnostics:    diagnostics,
		newOracle: func(rootDir string, patterns []string) (parser.TypeOracle, error) {
			return parser.NewPackagesOracle(rootDir, patterns...)
		},
	}
}

// SetCustomModule sets a custom module path for binary names
func (g *Generator) SetCustomModule(moduleName string) {
	g.customModule = moduleName
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Generate executes the generation process for the given directories
func (g *Generator) Generate(directories []string, outputDir string) error {
	return g.Run(Config{
		Directories: directories,
		OutputDir:   outputDir,
		ModuleName:  g.customModule,
	})
}

// Run executes the complete generation process. Per-declaration failures
// are reported through diagnostics and never abort the run; only
// environment problems (unresolvable module, unreadable directories)
// return an error.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("Starting generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning directories: %v", config.Directories)

	moduleName, rootDir, err := g.moduleResolver.Resolve(config.ModuleName)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeConfiguration,
			Message: "Failed to resolve module path",
			Cause:   err,
			Suggestions: []string{
				"Check your go.mod file exists and is valid",
				"Ensure you're running from inside the module",
				"Try specifying --module flag explicitly",
			},
			Context: map[string]interface{}{
				"provided_module": config.ModuleName,
			},
		}
	}
	g.diagnostics.Debug("Resolved module path: %s (root %s)", moduleName, rootDir)

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: "Failed to scan directories",
			Cause:   err,
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}
	if len(packageDirs) == 0 {
		g.diagnostics.Warn("No Go packages found in %v", config.Directories)
		return nil
	}

	providers, roots, err := g.collectMetadata(packageDirs, moduleName, rootDir)
	if err != nil {
		return err
	}
	g.summary.ProvidersFound = len(providers)
	g.summary.RootsFound = len(roots)

	filer := generator.NewDirFiler(config.OutputDir)

	if len(providers) > 0 {
		if err := g.runRegistry(providers, rootDir, config.Directories, filer); err != nil {
			return err
		}
	}
	if len(roots) > 0 {
		g.runDescriptions(roots, filer)
	}

	g.diagnostics.Verbose("Generation finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// collectMetadata parses every discovered package and pools the provider
// and root declarations
func (g *Generator) collectMetadata(packageDirs []string, moduleName, rootDir string) ([]models.ServiceProvider, []models.ResourceRoot, error) {
	var providers []models.ServiceProvider
	var roots []models.ResourceRoot

	for _, dir := range packageDirs {
		importPath, err := g.moduleResolver.BuildPackagePath(moduleName, rootDir, dir)
		if err != nil {
			return nil, nil, &models.GeneratorError{
				Type:    models.ErrorTypeConfiguration,
				Message: fmt.Sprintf("Failed to build import path for %s", dir),
				Cause:   err,
			}
		}

		g.diagnostics.Progress("Parsing %s", importPath)
		metadata, err := g.parser.ParseDirectory(dir, importPath)
		if err != nil {
			return nil, nil, &models.GeneratorError{
				Type:    models.ErrorTypeParse,
				Message: fmt.Sprintf("Failed to parse package %s", importPath),
				Cause:   err,
				Suggestions: []string{
					"Check that the package contains valid Go source",
				},
			}
		}

		g.summary.PackagesProcessed++
		providers = append(providers, metadata.Providers...)
		roots = append(roots, metadata.Roots...)
	}

	return providers, roots, nil
}

// runRegistry validates the providers against the type oracle and writes
// the registry files
func (g *Generator) runRegistry(providers []models.ServiceProvider, rootDir string, patterns []string, filer generator.Filer) error {
	g.diagnostics.Progress("Loading type information")
	oracle, err := g.newOracle(rootDir, patterns)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeParse,
			Message: "Failed to load type information",
			Cause:   err,
			Suggestions: []string{
				"Check that the module builds with 'go build ./...'",
			},
		}
	}

	registryGen := generator.NewRegistryGenerator(oracle, filer, g.diagnostics)
	registry, invalid := registryGen.Aggregate(providers)
	g.summary.InvalidProviders = invalid

	g.summary.RegistryFiles = registryGen.Write(registry)
	for _, relPath := range g.summary.RegistryFiles {
		g.diagnostics.WriteProgress("wrote %s", relPath)
	}
	return nil
}

// runDescriptions composes the description entries and writes the bundle
func (g *Generator) runDescriptions(roots []models.ResourceRoot, filer generator.Filer) {
	descGen := generator.NewDescriptionGenerator(filer, g.diagnostics)
	entries, first := descGen.Aggregate(roots)
	g.summary.DescriptionEntries = entries.Len()

	if relPath, ok := descGen.Write(first, entries); ok {
		g.summary.BundleFile = relPath
		g.diagnostics.WriteProgress("wrote %s", relPath)
	}
}
