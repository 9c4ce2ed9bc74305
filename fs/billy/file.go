package billy

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// File is an open go-billy file. io.EOF is passed through unchanged so that
// io.Copy and io.SectionReader see the end of the file; every other error
// carries the operation and the file name.
type File struct {
	f billy.File
}

func (f *File) fail(op string, err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	return fmt.Errorf("billy: %s %q: %w", op, f.f.Name(), err)
}

// Name returns the name the file was opened with.
func (f *File) Name() string { return f.f.Name() }

func (f *File) Read(p []byte) (int, error) {
	n, err := f.f.Read(p)
	return n, f.fail("read", err)
}

// ReadAt reads one upload part starting at off.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.f.ReadAt(p, off)
	return n, f.fail(fmt.Sprintf("readat %d", off), err)
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	return n, f.fail("write", err)
}

func (f *File) Close() error {
	return f.fail("close", f.f.Close())
}
