package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path of a database file in a directory that is
// removed when the test ends.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "finance.db")
}
