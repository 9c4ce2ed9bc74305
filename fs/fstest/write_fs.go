package fstest

import (
	"bytes"
	"testing"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// TestWriteFS tests write operations: Create, MkdirAll, Remove.
func TestWriteFS(t *testing.T, filesystem fs.Filesystem) {
	t.Run("CreateAndWrite", func(t *testing.T) {
		testWriteFSCreate(t, filesystem)
	})
	t.Run("MkdirAll", func(t *testing.T) {
		testWriteFSMkdirAll(t, filesystem)
	})
	t.Run("Remove", func(t *testing.T) {
		testWriteFSRemove(t, filesystem)
	})
}

func testWriteFSCreate(t *testing.T, filesystem fs.Filesystem) {
	testData := []byte("object body")

	f, err := filesystem.Create("download.bin")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "download.bin", err)
	}

	n, err := f.Write(testData)
	if err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if n != len(testData) {
		_ = f.Close()
		t.Fatalf("Write(): wrote %d bytes, want %d", n, len(testData))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	data, err := ReadFile(filesystem, "download.bin")
	if err != nil {
		t.Errorf("ReadFile(%q): got error %v, want nil", "download.bin", err)
		return
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("ReadFile(%q): got %q, want %q", "download.bin", data, testData)
	}
}

func testWriteFSMkdirAll(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.MkdirAll("parent/child/grandchild", 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v, want nil", "parent/child/grandchild", err)
	}

	for _, dir := range []string{"parent", "parent/child", "parent/child/grandchild"} {
		info, err := filesystem.Stat(dir)
		if err != nil {
			t.Errorf("Stat(%q): got error %v, want nil", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", dir)
		}
	}
}

func testWriteFSRemove(t *testing.T, filesystem fs.Filesystem) {
	if err := WriteFile(filesystem, "remove.txt", []byte("x")); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "remove.txt", err)
	}
	if err := filesystem.Remove("remove.txt"); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "remove.txt", err)
	}

	exists, err := Exists(filesystem, "remove.txt")
	if err != nil {
		t.Errorf("Exists(%q): got error %v, want nil", "remove.txt", err)
		return
	}
	if exists {
		t.Errorf("Exists(%q): got true after Remove, want false", "remove.txt")
	}
}
