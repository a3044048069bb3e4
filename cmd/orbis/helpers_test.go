package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// cliFixture points the global flags at a throwaway Hytale root with one save
type cliFixture struct {
	root      string
	globalDir string
	saveDir   string
}

func setupCLI(t *testing.T) *cliFixture {
	t.Helper()

	root := t.TempDir()
	f := &cliFixture{
		root:      root,
		globalDir: filepath.Join(root, "UserData", "Mods"),
		saveDir:   filepath.Join(root, "UserData", "Saves", "World1"),
	}
	require.NoError(t, os.MkdirAll(f.globalDir, 0755))
	require.NoError(t, os.MkdirAll(f.saveDir, 0755))

	configDir = t.TempDir()
	dataDir = t.TempDir()
	hytaleRoot = root
	saveName = "World1"
	verbose = false
	jsonOutput = false
	noColor = true

	t.Cleanup(func() {
		configDir, dataDir, hytaleRoot, saveName = "", "", "", ""
		jsonOutput, noColor = false, false
	})

	return f
}

// executeCommand runs sub under a fresh parent and returns its output
func executeCommand(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.AddCommand(sub)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeTestZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func testManifest(group, name string) []byte {
	return []byte(fmt.Sprintf(`{"Group": %q, "Name": %q, "Version": "1.0.0", "Authors": [{"Name": "tester"}]}`, group, name))
}

func writeTestMod(t *testing.T, dir, fileName, group, name string) {
	t.Helper()
	writeTestZip(t, filepath.Join(dir, fileName), map[string][]byte{
		"manifest.json": testManifest(group, name),
	})
}
