package resolver

import (
	"context"
	"errors"
	"io"
	"io/fs"
)

// FS resolves paths against an fs.FS such as an embed.FS.
type FS struct {
	fsys fs.FS
}

// NewFS creates a resolver over fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Exists reports whether path names a regular file in the file system.
func (f *FS) Exists(_ context.Context, path string) (bool, error) {
	if !fs.ValidPath(path) {
		return false, nil
	}
	fi, err := fs.Stat(f.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

// Resolve opens path in the file system.
func (f *FS) Resolve(_ context.Context, path string) (io.ReadCloser, error) {
	if !fs.ValidPath(path) {
		return nil, ErrNotFound
	}
	file, err := f.fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if fi, err := file.Stat(); err == nil && fi.IsDir() {
		_ = file.Close()
		return nil, ErrNotFound
	}
	return file, nil
}
