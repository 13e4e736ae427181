package utils

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sync"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
)

// FileReader provides common file reading functionality with caching. A
// single reader owns one token.FileSet so positions from every parsed file
// resolve consistently.
type FileReader struct {
	fileSet *token.FileSet

	mu           sync.RWMutex
	astCache     map[string]*ast.File
	contentCache map[string]string
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		fileSet:      token.NewFileSet(),
		astCache:     make(map[string]*ast.File),
		contentCache: make(map[string]string),
	}
}

// ParseGoFile parses a Go source file and returns the AST with caching
func (fr *FileReader) ParseGoFile(filePath string) (*ast.File, error) {
	cleanPath := filepath.Clean(filePath)

	fr.mu.RLock()
	cached, exists := fr.astCache[cleanPath]
	fr.mu.RUnlock()
	if exists {
		return cached, nil
	}

	file, err := parser.ParseFile(fr.fileSet, cleanPath, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParse(fmt.Sprintf("Go file %s", filepath.Base(cleanPath)), err)
	}

	fr.mu.Lock()
	fr.astCache[cleanPath] = file
	fr.mu.Unlock()

	return file, nil
}

// ParseGoSource parses Go source code from a string
func (fr *FileReader) ParseGoSource(filename, source string) (*ast.File, error) {
	file, err := parser.ParseFile(fr.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}
	return file, nil
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	fr.mu.RLock()
	cached, exists := fr.contentCache[cleanPath]
	fr.mu.RUnlock()
	if exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", errors.NewFileSystemError(cleanPath, err, "failed to read file %s", filepath.Base(cleanPath))
	}

	contentStr := string(content)

	fr.mu.Lock()
	fr.contentCache[cleanPath] = contentStr
	fr.mu.Unlock()

	return contentStr, nil
}

// GetFileSet returns the token.FileSet used by this reader
func (fr *FileReader) GetFileSet() *token.FileSet {
	return fr.fileSet
}
