package utils

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tsport/internal/errors"
)

func TestSourceReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "types.ts", "interface A {}")
	reader := NewSourceReader()

	content, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "interface A {}", content)
	assert.Equal(t, 1, reader.CachedFiles())

	// served from cache through an uncleaned path
	sep := string(filepath.Separator)
	content, err = reader.ReadFile(dir + sep + "." + sep + "types.ts")
	require.NoError(t, err)
	assert.Equal(t, "interface A {}", content)
	assert.Equal(t, 1, reader.CachedFiles())

	writeFile(t, dir, "types.ts", "interface B { b: string; }")
	content, err = reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "interface B { b: string; }", content)

	reader.InvalidateFile(path)
	assert.Equal(t, 0, reader.CachedFiles())
}

func TestSourceReader_Errors(t *testing.T) {
	reader := NewSourceReader()

	t.Run("blank path", func(t *testing.T) {
		_, err := reader.ReadFile("  ")
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
		assert.Equal(t, "no source file provided", err.Error())
	})

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "sub", "..", "missing.ts")
		_, err := reader.ReadFile(missing)
		require.Error(t, err)
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
		assert.Equal(t, "failed to read "+filepath.Clean(missing), err.Error())

		var pathErr *fs.PathError
		assert.True(t, errors.As(err, &pathErr))
	})
}

func TestSourceReader_Exists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "")
	reader := NewSourceReader()

	assert.True(t, reader.Exists(path))
	assert.False(t, reader.Exists(dir))
	assert.False(t, reader.Exists(filepath.Join(dir, "nope.ts")))
	assert.False(t, reader.Exists(""))
}
