package generator

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filer is the output surface both generators write through. Paths are
// slash-separated and relative to the output root. GetResource fails with
// an fs.ErrNotExist error when the resource is absent, which callers treat
// as "start from empty" rather than a failure.
type Filer interface {
	GetResource(relPath string) (io.ReadCloser, error)
	CreateResource(relPath string) (io.WriteCloser, error)
}

// IsNotExist reports whether an error from GetResource means the resource
// is simply absent
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// DirFiler implements Filer over a directory on disk
type DirFiler struct {
	root string
}

// NewDirFiler creates a Filer rooted at the given output directory
func NewDirFiler(root string) *DirFiler {
	return &DirFiler{root: root}
}

// Root returns the output root directory
func (f *DirFiler) Root() string {
	return f.root
}

// GetResource opens an existing resource for reading
func (f *DirFiler) GetResource(relPath string) (io.ReadCloser, error) {
	return os.Open(f.resolve(relPath))
}

// CreateResource creates (or truncates) a resource for writing, creating
// parent directories as needed
func (f *DirFiler) CreateResource(relPath string) (io.WriteCloser, error) {
	target := f.resolve(relPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	return os.Create(target)
}

func (f *DirFiler) resolve(relPath string) string {
	return filepath.Join(f.root, filepath.FromSlash(relPath))
}
