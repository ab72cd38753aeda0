package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/assetkit/internal/mmap"
)

// Dir resolves paths against a directory on the local file system.
// Streams are memory-mapped.
type Dir struct {
	root string
}

// NewDir creates a resolver rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory the resolver serves.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) file(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q escapes %s", ErrNotFound, path, d.root)
	}
	return filepath.Join(d.root, local), nil
}

// Exists reports whether path names a regular file below the root.
func (d *Dir) Exists(_ context.Context, path string) (bool, error) {
	file, err := d.file(path)
	if err != nil {
		return false, nil
	}
	fi, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

// Resolve maps the file at path and returns a reader over it.
func (d *Dir) Resolve(_ context.Context, path string) (io.ReadCloser, error) {
	file, err := d.file(path)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(file); err == nil && fi.IsDir() {
		return nil, ErrNotFound
	}
	m, err := mmap.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return m.NewReader(), nil
}
