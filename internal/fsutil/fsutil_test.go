package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

func TestEnsureEmptyDir(t *testing.T) {
	t.Run("creates missing directory with parents", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "nested", "new-app")

		require.NoError(t, EnsureEmptyDir(target))

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("accepts existing empty directory", func(t *testing.T) {
		assert.NoError(t, EnsureEmptyDir(t.TempDir()))
	})

	t.Run("rejects non-empty directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0644))

		err := EnsureEmptyDir(dir)
		require.Error(t, err)
		assert.True(t, mkerrors.Is(err, mkerrors.Precondition))
		assert.Contains(t, err.Error(), "not empty")
	})

	t.Run("rejects file path", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))

		err := Preparer{}.Prepare(file)
		require.Error(t, err)
		assert.True(t, mkerrors.Is(err, mkerrors.Precondition))
		assert.Contains(t, err.Error(), "not a directory")
	})
}
