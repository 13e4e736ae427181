package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jamezp/wildfly-build-tools/internal/cli"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

func main() {
	var (
		outputFlag  = flag.String("output", "target/classes", "Output root for registry and description files")
		moduleFlag  = flag.String("module", "", "Custom module path for type names (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete generated registry and description files from the output root")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "WildFly Build Tools Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for Go files with wildfly:: annotations and\n")
		fmt.Fprintf(os.Stderr, "generates META-INF/services registries and description bundles.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                     # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/...                            # Scan internal directory recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --output build/resources ./...            # Write under a custom output root\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...     # Specify custom module path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                             # Delete generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	if *cleanFlag {
		diagnostics.Section("WildFly Build Tools")
		removed, err := cli.NewCleaner().CleanOutput(*outputFlag)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		for _, path := range removed {
			diagnostics.List("removed %s", path)
		}
		diagnostics.Success("Removed %d generated file(s) from %s", len(removed), *outputFlag)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	diagnostics.Section("WildFly Build Tools")
	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		diagnostics.List("Output root: %s", *outputFlag)
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	if *moduleFlag != "" {
		generator.SetCustomModule(*moduleFlag)
	}

	if err := generator.Generate(args, *outputFlag); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Generation Complete", map[string]interface{}{
		"Packages processed":  summary.PackagesProcessed,
		"Providers found":     summary.ProvidersFound,
		"Invalid providers":   summary.InvalidProviders,
		"Registry files":      len(summary.RegistryFiles),
		"Description entries": summary.DescriptionEntries,
	})

	if *verboseFlag && len(summary.RegistryFiles) > 0 {
		diagnostics.Subsection("Registry Files")
		for _, file := range summary.RegistryFiles {
			diagnostics.List("%s", file)
		}
	}
	if *verboseFlag && summary.BundleFile != "" {
		diagnostics.Subsection("Description Bundle")
		diagnostics.List("%s", summary.BundleFile)
	}
}
