package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	dir, err := EnsureDir(filepath.Join(base, "a", "b"))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// Second call on an existing directory is a no-op.
	again, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, again)
}

func TestFileExists(t *testing.T) {
	base := t.TempDir()

	require.False(t, FileExists(filepath.Join(base, "missing.png")))
	require.False(t, FileExists(base)) // directory, not a file

	f := filepath.Join(base, "pill.png")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
	require.True(t, FileExists(f))
}
