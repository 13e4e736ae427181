package models

import "github.com/jamezp/wildfly-build-tools/internal/annotations"

// PackageMetadata holds everything the generators need from one scanned
// Go package: discovered service providers and resource path root types.
type PackageMetadata struct {
	PackageName string // package identifier from the package clause
	PackagePath string // directory on disk
	ImportPath  string // module-qualified import path, used for binary names

	Providers []ServiceProvider
	Roots     []ResourceRoot
}

// ServiceProvider is a type declaration carrying a provider annotation,
// paired with the contract it claims to implement.
type ServiceProvider struct {
	TypeName    string // declared type name
	BinaryName  string // fully qualified id: <importPath>.<TypeName>
	ContractRef string // contract reference exactly as written in the annotation
	Contract    string // resolved fully qualified contract id
	Concrete    bool   // false when the declaration is itself an interface
	Location    annotations.SourceLocation
}

// ResourceRoot is a type declaration carrying a path annotation. Its path
// is inherited by the description keys of its fields.
type ResourceRoot struct {
	TypeName     string
	Package      string // import path of the declaring package
	Path         string // root dotted path
	Bundle       *BundleSpec
	Descriptions []Description // descriptions attached directly to the type
	Fields       []ResourceField
	Location     annotations.SourceLocation
}

// ResourceField is a struct field of a resource root, with any path and
// description annotations attached to it. A field may carry zero or more
// of each, in any combination.
type ResourceField struct {
	Name         string
	Paths        []string
	Descriptions []Description
	Location     annotations.SourceLocation
}

// Description is one description annotation's payload.
type Description struct {
	Value string // the description text
	Name  string // optional name segment override
	Path  string // optional path segment appended to the root path
	Key   string // optional full key override, bypasses composition
}

// BundleSpec names the properties bundle a root's descriptions are
// written into.
type BundleSpec struct {
	Package string // target package directory, slash separated
	File    string // bundle file name
}
