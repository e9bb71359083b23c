package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# test"), 0o644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.hcl", "a.hcl", "nested/c.YAML", "notes.txt")

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.YAML"),
	}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(dir) })
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "mods/a.hcl", "mods/b.hcl", "extra.txt")

	explicit := filepath.Join(dir, "extra.txt")
	files, err := FindFiles([]string{explicit, filepath.Join(dir, "mods"), filepath.Join(dir, "mods", "a.hcl")}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		explicit,
		filepath.Join(dir, "mods", "a.hcl"),
		filepath.Join(dir, "mods", "b.hcl"),
	}, files)

	_, err = FindFiles([]string{filepath.Join(dir, "missing")}, ".hcl")
	assert.Error(t, err)
}
