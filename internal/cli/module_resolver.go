package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// ModuleResolver determines the module path used to qualify type names and
// the module root directory import paths are computed against.
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(utils.NewFileReader()),
	}
}

// Resolve returns the module path and the module root directory. A custom
// module path overrides the one declared in go.mod; the root directory is
// the directory holding the nearest go.mod, falling back to the working
// directory when a custom module is given and no go.mod exists.
func (r *ModuleResolver) Resolve(customModule string) (string, string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get current directory: %w", err)
	}

	goModPath, err := r.goMod.FindGoModFile(currentDir)
	if err != nil {
		if customModule != "" {
			return customModule, currentDir, nil
		}
		return "", "", fmt.Errorf("failed to determine module path: %w (consider using --module flag)", err)
	}

	rootDir := filepath.Dir(goModPath)
	if customModule != "" {
		return customModule, rootDir, nil
	}

	moduleName, err := r.goMod.ParseModuleName(goModPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to determine module path: %w (consider using --module flag)", err)
	}
	return moduleName, rootDir, nil
}

// BuildPackagePath builds the full import path for a package directory
// relative to the module root
func (r *ModuleResolver) BuildPackagePath(moduleName, rootDir, packageDir string) (string, error) {
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}

	relPath, err := filepath.Rel(rootDir, absPackageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == "." {
		return moduleName, nil
	}
	return fmt.Sprintf("%s/%s", moduleName, importPath), nil
}
