package srcfix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver(t *testing.T) {
	dir := t.TempDir()
	resolver, err := NewPathResolver(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a/b.tsx"), resolver.Resolve("a/b.tsx"))
	assert.Equal(t, "/abs/path.tsx", resolver.Resolve("/abs/path.tsx"))
	assert.Equal(t, "a/b.tsx", resolver.Rel(filepath.Join(dir, "a/b.tsx")))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tsx")

	require.NoError(t, os.WriteFile(path, []byte("before"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("after"), 0644))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after", string(out))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.tsx")
	require.NoError(t, WriteFileAtomic(path, []byte("content"), 0644))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(out))
}

func TestBlobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := []byte("some file content\nwith lines\n")
	hash := hashBytes(content)

	require.NoError(t, WriteBlob(dir, hash, content))

	got, err := ReadBlob(dir, hash)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReadBlob_EmptyHash(t *testing.T) {
	got, err := ReadBlob(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
