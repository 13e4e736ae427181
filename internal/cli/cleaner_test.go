package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanOutputRemovesGeneratedFiles(t *testing.T) {
	outputDir := t.TempDir()

	registryFile := filepath.Join(outputDir, "META-INF", "services", "example.com/spi.Formatter")
	require.NoError(t, os.MkdirAll(filepath.Dir(registryFile), 0o755))
	require.NoError(t, os.WriteFile(registryFile, []byte("example.com/app.JSONFormatter\n"), 0o644))

	generatedBundle := filepath.Join(outputDir, "org", "example", "LocalDescriptions.properties")
	require.NoError(t, os.MkdirAll(filepath.Dir(generatedBundle), 0o755))
	require.NoError(t, os.WriteFile(generatedBundle, []byte("# Generated description file\nserver=The server\n"), 0o644))

	handWritten := filepath.Join(outputDir, "org", "example", "Manual.properties")
	require.NoError(t, os.WriteFile(handWritten, []byte("hand=written\n"), 0o644))

	removed, err := NewCleaner().CleanOutput(outputDir)
	require.NoError(t, err)

	assert.Contains(t, removed, registryFile)
	assert.Contains(t, removed, generatedBundle)
	assert.NotContains(t, removed, handWritten)

	assert.NoFileExists(t, registryFile)
	assert.NoFileExists(t, generatedBundle)
	assert.FileExists(t, handWritten)
}

func TestCleanOutputMissingRootIsNotAnError(t *testing.T) {
	removed, err := NewCleaner().CleanOutput(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleanOutputEmptyRoot(t *testing.T) {
	removed, err := NewCleaner().CleanOutput(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, removed)
}
