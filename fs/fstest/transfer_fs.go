package fstest

import (
	"errors"
	"io"
	"testing"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// TestTransferFS tests the access patterns of the S3 transfer operations:
// reading a source file in parts with ReadAt and replacing a destination
// through Create.
func TestTransferFS(t *testing.T, filesystem fs.Filesystem) {
	t.Run("ReadAtParts", func(t *testing.T) {
		testTransferReadAtParts(t, filesystem)
	})
	t.Run("CreateTruncatesExisting", func(t *testing.T) {
		testTransferCreateTruncates(t, filesystem)
	})
	t.Run("CreateInNewDirectory", func(t *testing.T) {
		testTransferCreateInNewDirectory(t, filesystem)
	})
}

func testTransferReadAtParts(t *testing.T, filesystem fs.Filesystem) {
	if err := WriteFile(filesystem, "upload.txt", []byte("abcdefgh")); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "upload.txt", err)
	}

	f, err := filesystem.Open("upload.txt")
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", "upload.txt", err)
	}
	defer func() { _ = f.Close() }()

	info, err := filesystem.Stat("upload.txt")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "upload.txt", err)
	}
	if info.Size() != 8 {
		t.Errorf("Stat(%q): Size() = %d, want 8", "upload.txt", info.Size())
	}

	// Parts of 3 bytes, the last one short.
	want := []string{"abc", "def", "gh"}
	for i, part := range want {
		buf := make([]byte, 3)
		n, err := f.ReadAt(buf, int64(i*3))
		if err != nil && !errors.Is(err, io.EOF) {
			t.Errorf("ReadAt(off=%d): got error %v, want nil or EOF", i*3, err)
			continue
		}
		if got := string(buf[:n]); got != part {
			t.Errorf("ReadAt(off=%d): got %q, want %q", i*3, got, part)
		}
	}
}

func testTransferCreateTruncates(t *testing.T, filesystem fs.Filesystem) {
	if err := WriteFile(filesystem, "existing.txt", []byte("previous download, longer")); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", "existing.txt", err)
	}

	f, err := filesystem.Create("existing.txt")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "existing.txt", err)
	}
	if _, err := f.Write([]byte("new")); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	data, err := ReadFile(filesystem, "existing.txt")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", "existing.txt", err)
	}
	if string(data) != "new" {
		t.Errorf("ReadFile(%q): got %q, want %q", "existing.txt", data, "new")
	}
}

// testTransferCreateInNewDirectory follows DownloadFile: MkdirAll on the
// parent, then Create.
func testTransferCreateInNewDirectory(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.MkdirAll("downloads/2024", 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v, want nil", "downloads/2024", err)
	}
	f, err := filesystem.Create("downloads/2024/report.csv")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "downloads/2024/report.csv", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	exists, err := Exists(filesystem, "downloads/2024/report.csv")
	if err != nil || !exists {
		t.Errorf("Exists(%q): got %v, %v, want true, nil", "downloads/2024/report.csv", exists, err)
	}
}
