package core_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// zipBytes builds an in-memory zip. Names ending in "/" become directory entries.
func zipBytes(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.Create(name)
		require.NoError(t, err)
		if len(files[name]) > 0 {
			_, err = fw.Write(files[name])
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// writeZip writes a zip to path and returns path
func writeZip(t *testing.T, path string, files map[string][]byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, zipBytes(t, files), 0644))
	return path
}

func manifestJSON(group, name, version string) []byte {
	return []byte(fmt.Sprintf(`{"Group": %q, "Name": %q, "Version": %q}`, group, name, version))
}

// modArchive returns the bytes of a mod archive with a minimal manifest
func modArchive(t *testing.T, group, name string) []byte {
	t.Helper()
	return zipBytes(t, map[string][]byte{
		"manifest.json":          manifestJSON(group, name, "1.0.0"),
		"com/example/Main.class": []byte("bytecode"),
	})
}

// writeModArchive writes a mod archive named fileName into dir
func writeModArchive(t *testing.T, dir, fileName, group, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, modArchive(t, group, name), 0644))
	return path
}

func writeModConfig(t *testing.T, saveDir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(saveDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(saveDir, "config.json"), []byte(content), 0644))
}
