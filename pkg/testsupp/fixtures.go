package testsupp

import (
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
	"github.com/rogpeppe/go-internal/txtar"
	"github.com/stretchr/testify/require"
)

// CopyFixture copies the fixture directory into a temporary directory and returns the copy path.
// The temporary directory is removed when the test finishes.
func CopyFixture(t *testing.T, src string) string {
	t.Helper()

	dst := filepath.Join(t.TempDir(), filepath.Base(src))
	require.NoError(t, copy.Copy(src, dst))
	return dst
}

// ReadArchive reads the txtar archive and returns its files by name.
func ReadArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		require.NotContains(t, files, f.Name, "duplicate file %s in %s", f.Name, path)
		files[f.Name] = string(f.Data)
	}
	return files
}
