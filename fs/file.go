package fs

import "io"

// File is an open local file. Upload reads it in parts with ReadAt,
// download streams the object body into it with Write.
type File interface {
	io.Reader
	io.ReaderAt
	io.Writer
	io.Closer

	// Name returns the name the file was opened with.
	Name() string
}
