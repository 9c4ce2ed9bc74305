package fstest

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"testing"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// TestReadFS tests read operations: Open and Stat.
func TestReadFS(t *testing.T, filesystem fs.Filesystem) {
	testContent := []byte("id,name\n1,alice\n")

	if err := filesystem.MkdirAll("testdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir): setup failed: %v", err)
	}
	if err := WriteFile(filesystem, "testdir/testfile.csv", testContent); err != nil {
		t.Fatalf("WriteFile(testdir/testfile.csv): setup failed: %v", err)
	}

	t.Run("Open", func(t *testing.T) {
		testReadFSOpen(t, filesystem, testContent)
	})
	t.Run("StatFile", func(t *testing.T) {
		testReadFSStatFile(t, filesystem, testContent)
	})
	t.Run("StatDir", func(t *testing.T) {
		testReadFSStatDir(t, filesystem)
	})
	t.Run("NotExist", func(t *testing.T) {
		testReadFSNotExist(t, filesystem)
	})
	t.Run("Exists", func(t *testing.T) {
		testReadFSExists(t, filesystem)
	})
}

func testReadFSOpen(t *testing.T, filesystem fs.Filesystem, testContent []byte) {
	f, err := filesystem.Open("testdir/testfile.csv")
	if err != nil {
		t.Errorf("Open(%q): got error %v, want nil", "testdir/testfile.csv", err)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.Errorf("Close(): got error %v", closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Errorf("Read(): got error %v, want nil", err)
		return
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("Read(): got %q, want %q", data, testContent)
	}
}

func testReadFSStatFile(t *testing.T, filesystem fs.Filesystem, testContent []byte) {
	info, err := filesystem.Stat("testdir/testfile.csv")
	if err != nil {
		t.Errorf("Stat(%q): got error %v, want nil", "testdir/testfile.csv", err)
		return
	}
	if info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = true, want false", "testdir/testfile.csv")
	}
	if info.Size() != int64(len(testContent)) {
		t.Errorf("Stat(%q): Size() = %d, want %d", "testdir/testfile.csv", info.Size(), len(testContent))
	}
}

func testReadFSStatDir(t *testing.T, filesystem fs.Filesystem) {
	info, err := filesystem.Stat("testdir")
	if err != nil {
		t.Errorf("Stat(%q): got error %v, want nil", "testdir", err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", "testdir")
	}
}

// testReadFSNotExist checks that missing files report fs.ErrNotExist, which
// upload relies on to tell a missing source apart from other failures.
func testReadFSNotExist(t *testing.T, filesystem fs.Filesystem) {
	if _, err := filesystem.Open("nonexistent"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Open(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
	if _, err := filesystem.Stat("nonexistent"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
	}
}

func testReadFSExists(t *testing.T, filesystem fs.Filesystem) {
	for path, want := range map[string]bool{
		"testdir/testfile.csv": true,
		"testdir":              true,
		"nonexistent":          false,
	} {
		exists, err := Exists(filesystem, path)
		if err != nil {
			t.Errorf("Exists(%q): got error %v, want nil", path, err)
			continue
		}
		if exists != want {
			t.Errorf("Exists(%q): got %v, want %v", path, exists, want)
		}
	}
}
