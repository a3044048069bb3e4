package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"orbis/internal/core"
	"orbis/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexer_Scan_MissingDir(t *testing.T) {
	result, err := core.NewIndexer(nil).Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, result.Archives)
	assert.Empty(t, result.Failures)
}

func TestIndexer_Scan_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := core.NewIndexer(nil).Scan(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryIO)
}

func TestIndexer_Build_MixedDirectory(t *testing.T) {
	dir := t.TempDir()

	writeModArchive(t, dir, "core.jar", "Hytale", "Core")
	writeModArchive(t, dir, "Tools.ZIP", "Acme", "Tools")
	writeZip(t, filepath.Join(dir, "broken.jar"), map[string][]byte{
		"readme.txt": []byte("no manifest here"),
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orbis-metadata.json"), []byte("{}"), 0644))
	writeModArchive(t, filepath.Join(dir, "nested"), "deep.jar", "Deep", "Mod")

	idx, err := core.NewIndexer(nil).Build(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())

	entry, ok := idx.Lookup("Hytale:Core")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "core.jar"), entry.Path)
	assert.Equal(t, "Core", entry.Manifest.Name)

	entry, ok = idx.Lookup("Acme:Tools")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Tools.ZIP"), entry.Path)

	_, ok = idx.Lookup("Deep:Mod")
	assert.False(t, ok, "subdirectories are not scanned")

	require.Len(t, idx.Failures, 1)
	assert.Equal(t, filepath.Join(dir, "broken.jar"), idx.Failures[0].Path)
	assert.ErrorIs(t, idx.Failures[0].Err, domain.ErrManifestMissing)
}

func TestIndexer_Scan_RecordsSize(t *testing.T) {
	dir := t.TempDir()
	path := writeModArchive(t, dir, "mod.jar", "A", "B")

	info, err := os.Stat(path)
	require.NoError(t, err)

	result, err := core.NewIndexer(nil).Scan(dir)
	require.NoError(t, err)
	require.Len(t, result.Archives, 1)
	assert.Equal(t, info.Size(), result.Archives[0].Size)
	assert.Equal(t, "A:B", result.Archives[0].Manifest.Identity())
}

func TestIndexer_Build_DuplicateIdentity(t *testing.T) {
	dir := t.TempDir()
	writeModArchive(t, dir, "a-1.0.jar", "A", "B")
	writeModArchive(t, dir, "a-2.0.jar", "A", "B")

	idx, err := core.NewIndexer(nil).Build(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, idx.Len())
	entry, ok := idx.Lookup("A:B")
	require.True(t, ok)
	assert.Contains(t, []string{
		filepath.Join(dir, "a-1.0.jar"),
		filepath.Join(dir, "a-2.0.jar"),
	}, entry.Path)
}
