package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path of a database file unique to this test.
// The file is cleaned up together with the test's temporary directory.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.NewString()+".db")
}
