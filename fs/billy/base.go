package billy

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// BaseOSFS is a billy.Filesystem that passes paths straight to the OS.
// Relative paths resolve against the process working directory.
type BaseOSFS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // signature is dictated by billy.Chroot.
func (b *BaseOSFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the empty root; paths are not rebased.
func (b *BaseOSFS) Root() string {
	return ""
}

// NewBaseOSFS creates a filesystem that behaves like the native one.
func NewBaseOSFS() *FS {
	return NewFS(&BaseOSFS{})
}
