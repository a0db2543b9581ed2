package fsio

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdoc/internal/model"
)

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.java")
	require.NoError(t, os.WriteFile(path, []byte("class Foo {}"), 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class Foo {}", got)

	require.NoError(t, WriteFileAtomic(path, "/***/\nclass Foo {}"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/***/\nclass Foo {}", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.java"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "no", "such", "Foo.java"), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrIO)
}
