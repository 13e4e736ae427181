package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleName(t *testing.T) {
	tempDir := t.TempDir()
	goModPath := filepath.Join(tempDir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module example.com/app\n\ngo 1.25\n"), 0o644))

	p := NewGoModParser(NewFileReader())
	name, err := p.ParseModuleName(goModPath)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)
}

func TestParseModuleNameRejectsOtherFiles(t *testing.T) {
	p := NewGoModParser(NewFileReader())
	_, err := p.ParseModuleName("/tmp/main.go")
	assert.Error(t, err)
}

func TestParseModuleNameMissingDeclaration(t *testing.T) {
	tempDir := t.TempDir()
	goModPath := filepath.Join(tempDir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("go 1.25\n"), 0o644))

	p := NewGoModParser(NewFileReader())
	_, err := p.ParseModuleName(goModPath)
	assert.Error(t, err)
}

func TestFindGoModFileWalksUp(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "go.mod"), []byte("module example.com/app\n"), 0o644))

	nested := filepath.Join(tempDir, "internal", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p := NewGoModParser(NewFileReader())
	found, err := p.FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "go.mod"), found)
}
