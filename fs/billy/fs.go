// Package billy adapts go-billy filesystems to fs.Filesystem. The CLIs use
// NewBaseOSFS so that paths behave as they do in the shell, tests use
// NewInMemoryFS.
package billy

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	parentfs "github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

var _ parentfs.Filesystem = (*FS)(nil)

// FS adapts a go-billy filesystem to fs.Filesystem. Errors keep the
// underlying cause, so errors.Is(err, fs.ErrNotExist) holds for missing paths.
type FS struct {
	fs billy.Filesystem
}

// NewFS wraps an existing go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewInMemoryFS returns an empty in-memory filesystem.
func NewInMemoryFS() *FS {
	return NewFS(memfs.New())
}

// NewOSFS returns an OS filesystem rooted at path.
func NewOSFS(path string) *FS {
	return NewFS(osfs.New(path))
}

// Create creates or truncates the named file.
//
//nolint:ireturn // Filesystem returns fs.File.
func (b *FS) Create(name string) (parentfs.File, error) {
	f, err := b.fs.Create(name)
	if err != nil {
		return nil, fmt.Errorf("billy: create %q: %w", name, err)
	}
	return &File{f: f}, nil
}

// Open opens the named file for reading.
//
//nolint:ireturn // Filesystem returns fs.File.
func (b *FS) Open(name string) (parentfs.File, error) {
	f, err := b.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", name, err)
	}
	return &File{f: f}, nil
}

// MkdirAll creates path and any missing parents.
func (b *FS) MkdirAll(path string, perm os.FileMode) error {
	if err := b.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("billy: mkdir %q: %w", path, err)
	}
	return nil
}

// Remove removes the named file or empty directory.
func (b *FS) Remove(name string) error {
	if err := b.fs.Remove(name); err != nil {
		return fmt.Errorf("billy: remove %q: %w", name, err)
	}
	return nil
}

// Stat returns file info for name.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}
