package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamezp/wildfly-build-tools/internal/parser"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

const annotatedSource = `package formats

//wildfly::provider example.com/spi.Formatter
type JSONFormatter struct{}

//wildfly::path server
//wildfly::description "The server"
type ServerConfig struct {
	//wildfly::description "The maximum size"
	MAX_SIZE int
}
`

// setupModule creates a go.mod plus one annotated package and makes it the
// working directory
func setupModule(t *testing.T) string {
	t.Helper()
	tempDir := inModuleDir(t, "example.com/app")

	pkgDir := filepath.Join(tempDir, "formats")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "formats.go"), []byte(annotatedSource), 0o644))
	return tempDir
}

func testGenerator(t *testing.T, oracle parser.TypeOracle) *Generator {
	t.Helper()
	g := NewGenerator(utils.NewQuietDiagnostics())
	g.newOracle = func(rootDir string, patterns []string) (parser.TypeOracle, error) {
		return oracle, nil
	}
	return g
}

func TestRunGeneratesRegistryAndBundle(t *testing.T) {
	setupModule(t)
	outputDir := t.TempDir()

	oracle := parser.NewStaticOracle().
		Allow("example.com/app/formats.JSONFormatter", "example.com/spi.Formatter")
	g := testGenerator(t, oracle)

	err := g.Run(Config{
		Directories: []string{"./..."},
		OutputDir:   outputDir,
	})
	require.NoError(t, err)

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.PackagesProcessed)
	assert.Equal(t, 1, summary.ProvidersFound)
	assert.Zero(t, summary.InvalidProviders)
	assert.Equal(t, 1, summary.RootsFound)
	assert.Equal(t, 2, summary.DescriptionEntries)
	assert.Equal(t, []string{"META-INF/services/example.com/spi.Formatter"}, summary.RegistryFiles)
	assert.Equal(t, "example.com/app/formats/LocalDescriptions.properties", summary.BundleFile)

	registry, err := os.ReadFile(filepath.Join(outputDir, "META-INF", "services", "example.com/spi.Formatter"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/formats.JSONFormatter\n", string(registry))

	bundle, err := os.ReadFile(filepath.Join(outputDir, filepath.FromSlash(summary.BundleFile)))
	require.NoError(t, err)
	assert.Contains(t, string(bundle), "server = The server")
	assert.Contains(t, string(bundle), "server.max-size = The maximum size")
}

func TestRunRejectedProviderIsNotFatal(t *testing.T) {
	setupModule(t)
	outputDir := t.TempDir()

	// Oracle that knows neither side: the provider is rejected but the
	// description bundle is still written
	g := testGenerator(t, parser.NewStaticOracle())

	err := g.Run(Config{
		Directories: []string{"./..."},
		OutputDir:   outputDir,
	})
	require.NoError(t, err)

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.InvalidProviders)
	assert.Empty(t, summary.RegistryFiles)
	assert.NotEmpty(t, summary.BundleFile)
}

func TestRunCustomModuleChangesBinaryNames(t *testing.T) {
	setupModule(t)
	outputDir := t.TempDir()

	oracle := parser.NewStaticOracle().
		Allow("example.com/renamed/formats.JSONFormatter", "example.com/spi.Formatter")
	g := testGenerator(t, oracle)
	g.SetCustomModule("example.com/renamed")

	err := g.Generate([]string{"./..."}, outputDir)
	require.NoError(t, err)

	registry, err := os.ReadFile(filepath.Join(outputDir, "META-INF", "services", "example.com/spi.Formatter"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/renamed/formats.JSONFormatter\n", string(registry))
}

func TestRunNoPackagesFound(t *testing.T) {
	tempDir := inModuleDir(t, "example.com/app")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "empty"), 0o755))

	g := testGenerator(t, parser.NewStaticOracle())
	err := g.Run(Config{
		Directories: []string{filepath.Join(tempDir, "empty") + "/..."},
		OutputDir:   t.TempDir(),
	})

	require.NoError(t, err)
	assert.Zero(t, g.GetSummary().PackagesProcessed)
}
