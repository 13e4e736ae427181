package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories recursively scans the provided directories for Go
// packages and returns the directories that contain Go files. Supports
// Go-style patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var cleanDirs []string

	for _, rootDir := range rootDirs {
		baseDir := rootDir
		if strings.HasSuffix(rootDir, "/...") {
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", baseDir), err)
		}
		cleanDirs = append(cleanDirs, cleanPath)
	}

	return s.fileProcessor.ScanDirectoriesWithGoFiles(cleanDirs)
}
