package cli

// Config holds the configuration for one generator run
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string

	// OutputDir is the root the registry and bundle files are written under
	OutputDir string

	// ModuleName is the custom module path for binary names
	// If empty, it is determined from the nearest go.mod file
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
