package cli

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamezp/wildfly-build-tools/internal/generator"
)

// Cleaner removes previously generated files under the output root
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanOutput removes the registry directory and every generated
// description bundle under the output root. Returns the removed paths. A
// missing output root is not an error.
func (c *Cleaner) CleanOutput(outputDir string) ([]string, error) {
	var removed []string

	servicesDir := filepath.Join(outputDir, filepath.FromSlash(generator.ServicesDir))
	registryFiles, err := filesUnder(servicesDir)
	if err != nil {
		return removed, fmt.Errorf("failed to list registry files: %w", err)
	}
	if len(registryFiles) > 0 {
		if err := os.RemoveAll(servicesDir); err != nil {
			return removed, fmt.Errorf("failed to remove registry directory %s: %w", servicesDir, err)
		}
		removed = append(removed, registryFiles...)
	}

	bundles, err := c.findGeneratedBundles(outputDir)
	if err != nil {
		return removed, err
	}
	for _, bundle := range bundles {
		if err := os.Remove(bundle); err != nil {
			return removed, fmt.Errorf("failed to remove bundle %s: %w", bundle, err)
		}
		removed = append(removed, bundle)
	}

	return removed, nil
}

// findGeneratedBundles walks the output root for properties files that
// carry the generated header comment. Hand-written properties files are
// left alone.
func (c *Cleaner) findGeneratedBundles(outputDir string) ([]string, error) {
	var bundles []string

	err := filepath.WalkDir(outputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".properties") {
			return nil
		}
		generated, err := c.isGeneratedBundle(path)
		if err != nil {
			return err
		}
		if generated {
			bundles = append(bundles, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to scan output root %s: %w", outputDir, err)
	}

	return bundles, nil
}

// isGeneratedBundle checks the header comment on the first line
func (c *Cleaner) isGeneratedBundle(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == "# "+generator.BundleHeader, nil
}

// filesUnder lists all regular files under a directory tree; a missing
// directory yields an empty list
func filesUnder(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return files, nil
}
