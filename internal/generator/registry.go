package generator

import (
	"bufio"
	"path"
	"strings"

	"github.com/jamezp/wildfly-build-tools/internal/errors"
	"github.com/jamezp/wildfly-build-tools/internal/models"
	"github.com/jamezp/wildfly-build-tools/internal/parser"
	"github.com/jamezp/wildfly-build-tools/internal/utils"
)

// ServicesDir is the directory under the output root that registry files
// are written into, one file per contract.
const ServicesDir = "META-INF/services"

// ImplementationSet is an insertion-ordered set of implementation ids.
// Duplicates collapse to the first insertion.
type ImplementationSet struct {
	seen  map[string]struct{}
	items []string
}

// NewImplementationSet creates an empty set
func NewImplementationSet() *ImplementationSet {
	return &ImplementationSet{seen: make(map[string]struct{})}
}

// Add inserts an id, reporting whether it was newly added
func (s *ImplementationSet) Add(id string) bool {
	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, id)
	return true
}

// Items returns the ids in insertion order
func (s *ImplementationSet) Items() []string {
	return s.items
}

// Len returns the number of ids in the set
func (s *ImplementationSet) Len() int {
	return len(s.items)
}

// ServiceRegistry maps contract ids to their implementation sets,
// preserving the order contracts were first seen in.
type ServiceRegistry struct {
	contracts []string
	sets      map[string]*ImplementationSet
}

// NewServiceRegistry creates an empty registry
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{sets: make(map[string]*ImplementationSet)}
}

// Add records an implementation for a contract
func (r *ServiceRegistry) Add(contract, implementation string) {
	set, exists := r.sets[contract]
	if !exists {
		set = NewImplementationSet()
		r.sets[contract] = set
		r.contracts = append(r.contracts, contract)
	}
	set.Add(implementation)
}

// Contracts returns the contract ids in first-seen order
func (r *ServiceRegistry) Contracts() []string {
	return r.contracts
}

// Implementations returns the implementation ids for a contract in
// first-seen order
func (r *ServiceRegistry) Implementations(contract string) []string {
	set, exists := r.sets[contract]
	if !exists {
		return nil
	}
	return set.Items()
}

// RegistryGenerator aggregates service provider declarations into
// META-INF/services registry files, merging with any files already present
// under the output root.
type RegistryGenerator struct {
	oracle      parser.TypeOracle
	filer       Filer
	diagnostics *utils.DiagnosticSystem
}

// NewRegistryGenerator creates a registry generator
func NewRegistryGenerator(oracle parser.TypeOracle, filer Filer, diagnostics *utils.DiagnosticSystem) *RegistryGenerator {
	return &RegistryGenerator{
		oracle:      oracle,
		filer:       filer,
		diagnostics: diagnostics,
	}
}

// Aggregate validates the providers and groups the valid ones by contract.
// Invalid declarations produce a diagnostic and are excluded; they never
// abort the batch. The second return value is the number of rejected
// declarations.
func (g *RegistryGenerator) Aggregate(providers []models.ServiceProvider) (*ServiceRegistry, int) {
	registry := NewServiceRegistry()
	invalid := 0

	for _, provider := range providers {
		if !g.validate(provider) {
			invalid++
			continue
		}
		registry.Add(provider.Contract, provider.BinaryName)
	}

	return registry, invalid
}

// validate applies the provider rules: the declaration must be concrete,
// the contract reference must resolve, and the implementation must be
// assignable to the contract
func (g *RegistryGenerator) validate(provider models.ServiceProvider) bool {
	if !provider.Concrete {
		g.diagnostics.Error("%v", errors.NewValidationError(provider.Location,
			"%s must be a concrete type", provider.BinaryName))
		return false
	}
	if provider.Contract == "" {
		g.diagnostics.Error("%v", errors.NewValidationError(provider.Location,
			"%s is missing the required contract reference", provider.BinaryName))
		return false
	}
	assignable, err := g.oracle.Assignable(provider.BinaryName, provider.Contract)
	if err != nil {
		g.diagnostics.Error("%v", errors.NewValidationError(provider.Location,
			"contract %s is not resolvable: %v", provider.Contract, err))
		return false
	}
	if !assignable {
		g.diagnostics.Error("%v", errors.NewValidationError(provider.Location,
			"type %s is not assignable to %s", provider.BinaryName, provider.Contract))
		return false
	}
	return true
}

// Write merges each contract's set with any existing registry file and
// rewrites the file in full. Entries already on disk keep their position
// ahead of newly discovered ones. Failures are reported and the remaining
// contracts are still written. Returns the relative paths written.
func (g *RegistryGenerator) Write(registry *ServiceRegistry) []string {
	var written []string

	for _, contract := range registry.Contracts() {
		relPath := path.Join(ServicesDir, contract)

		merged := NewImplementationSet()
		g.mergeExisting(relPath, merged)
		for _, id := range registry.Implementations(contract) {
			merged.Add(id)
		}

		if err := g.writeRegistryFile(relPath, merged); err != nil {
			g.diagnostics.Error("failed to write registry %s: %v", relPath, err)
			continue
		}
		written = append(written, relPath)
	}

	return written
}

// mergeExisting reads a pre-existing registry file into the set, one
// implementation id per line. A missing file is not an error; any other
// read failure is reported and the merge proceeds with what was read.
func (g *RegistryGenerator) mergeExisting(relPath string, set *ImplementationSet) {
	reader, err := g.filer.GetResource(relPath)
	if err != nil {
		if !IsNotExist(err) {
			g.diagnostics.Error("failed to read registry %s: %v", relPath, err)
		}
		return
	}
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		g.diagnostics.Error("failed to read registry %s: %v", relPath, err)
	}
}

// writeRegistryFile rewrites the registry file with the merged set
func (g *RegistryGenerator) writeRegistryFile(relPath string, set *ImplementationSet) error {
	writer, err := g.filer.CreateResource(relPath)
	if err != nil {
		return err
	}

	buffered := bufio.NewWriter(writer)
	for _, id := range set.Items() {
		buffered.WriteString(id)
		buffered.WriteByte('\n')
	}
	if err := buffered.Flush(); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
