package fstest

import (
	"errors"
	"io"
	iofs "io/fs"
	"path"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// WriteFile creates name on fsys with the given content, creating parent
// directories as needed. Tests use it to seed upload sources.
func WriteFile(fsys fs.Filesystem, name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := fsys.Create(name)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	return errors.Join(werr, f.Close())
}

// ReadFile returns the content of name on fsys.
func ReadFile(fsys fs.Filesystem, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	data, rerr := io.ReadAll(f)
	return data, errors.Join(rerr, f.Close())
}

// Exists reports whether name exists on fsys.
func Exists(fsys fs.Filesystem, name string) (bool, error) {
	_, err := fsys.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
