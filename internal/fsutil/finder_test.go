package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"b.hcl":        {},
		"a.hcl":        {},
		"notes.txt":    {},
		"nested/c.hcl": {},
	}
	files, err := FindFilesByExtension(fsys, ".", ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.hcl", "b.hcl", "nested/c.hcl"}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { _, _ = FindFilesByExtension(fstest.MapFS{}, ".", "") })
}

func TestCollectFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(rel string) string {
		p := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		return p
	}
	one := write("one.hcl")
	two := write("sub/two.hcl")
	write("sub/readme.md")

	files, err := CollectFiles([]string{dir, one, filepath.Join(dir, "missing")}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{one, two}, files)
}
