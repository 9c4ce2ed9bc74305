// Package fstest provides a conformance test suite for fs.Filesystem
// implementations.
//
// The suite checks the contract the S3 transfer operations rely on: uploads
// stat and read local files in parts, downloads create or truncate the
// destination and stream the object body into it.
//
// Example usage:
//
//	func TestMyFilesystem(t *testing.T) {
//	    fstest.TestSuite(t, func() fs.Filesystem {
//	        return myfs.New()
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/fs"
)

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each group.
func TestSuite(t *testing.T, newFS func() fs.Filesystem) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests, skipping the named groups
// (e.g. "WriteFS"). This is useful for implementations with known
// behavioral differences from the standard contract.
func TestSuiteWithSkip(t *testing.T, newFS func() fs.Filesystem, skipTests []string) {
	groups := []struct {
		name string
		run  func(*testing.T, fs.Filesystem)
	}{
		{name: "ReadFS", run: TestReadFS},
		{name: "WriteFS", run: TestWriteFS},
		{name: "TransferFS", run: TestTransferFS},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if slices.Contains(skipTests, g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			g.run(t, newFS())
		})
	}
}
