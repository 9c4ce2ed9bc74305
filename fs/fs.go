// Package fs defines the filesystem abstraction used by the S3 transfer
// operations. Uploads read local files and downloads create them through a
// Filesystem so that tests can run against an in-memory tree.
package fs

import "os"

// Filesystem is the set of operations the transfers perform on local
// storage. Upload stats and opens the source; download creates the
// destination's directory and file, and removes the file again when the
// body cannot be written.
type Filesystem interface {
	Create(name string) (File, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (File, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}
