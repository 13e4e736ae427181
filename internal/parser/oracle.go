package parser

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// TypeOracle answers whether an implementation type is assignable to a
// contract type. Both sides are fully qualified ids of the form
// <importPath>.<TypeName>.
type TypeOracle interface {
	Assignable(implementation, contract string) (bool, error)
}

// PackagesOracle is a TypeOracle backed by the go/types information of the
// loaded packages.
type PackagesOracle struct {
	index map[string]types.Type
}

// NewPackagesOracle loads the given package patterns rooted at dir and
// indexes every named type they declare.
func NewPackagesOracle(dir string, patterns ...string) (*PackagesOracle, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports | packages.NeedDeps,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	oracle := &PackagesOracle{index: make(map[string]types.Type)}
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		oracle.indexPackage(pkg, seen)
	}
	return oracle, nil
}

// indexPackage records every named type of a package and its imports
func (o *PackagesOracle) indexPackage(pkg *packages.Package, seen map[string]bool) {
	if pkg.Types == nil || seen[pkg.PkgPath] {
		return
	}
	seen[pkg.PkgPath] = true

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		o.index[pkg.PkgPath+"."+typeName.Name()] = typeName.Type()
	}

	for _, imported := range pkg.Imports {
		o.indexPackage(imported, seen)
	}
}

// Assignable reports whether the implementation type satisfies the
// contract type. Interface contracts are checked against both the value
// and pointer method sets of the implementation.
func (o *PackagesOracle) Assignable(implementation, contract string) (bool, error) {
	impl, ok := o.index[implementation]
	if !ok {
		return false, fmt.Errorf("type %s is not resolvable", implementation)
	}
	contractType, ok := o.index[contract]
	if !ok {
		return false, fmt.Errorf("type %s is not resolvable", contract)
	}

	if iface, ok := contractType.Underlying().(*types.Interface); ok {
		if types.Implements(impl, iface) {
			return true, nil
		}
		return types.Implements(types.NewPointer(impl), iface), nil
	}

	return types.AssignableTo(impl, contractType), nil
}

// StaticOracle is a table-backed TypeOracle for tests and for callers that
// resolve assignability out of band.
type StaticOracle struct {
	// Assignments maps an implementation id to the contract ids it
	// satisfies.
	Assignments map[string][]string
	// Unresolvable lists ids the oracle should fail to resolve.
	Unresolvable map[string]bool
}

// NewStaticOracle creates an empty static oracle
func NewStaticOracle() *StaticOracle {
	return &StaticOracle{
		Assignments:  make(map[string][]string),
		Unresolvable: make(map[string]bool),
	}
}

// Allow records that implementation satisfies contract
func (o *StaticOracle) Allow(implementation string, contracts ...string) *StaticOracle {
	o.Assignments[implementation] = append(o.Assignments[implementation], contracts...)
	return o
}

// Assignable implements TypeOracle
func (o *StaticOracle) Assignable(implementation, contract string) (bool, error) {
	if o.Unresolvable[implementation] {
		return false, fmt.Errorf("type %s is not resolvable", implementation)
	}
	if o.Unresolvable[contract] {
		return false, fmt.Errorf("type %s is not resolvable", contract)
	}
	for _, c := range o.Assignments[implementation] {
		if c == contract {
			return true, nil
		}
	}
	return false, nil
}
