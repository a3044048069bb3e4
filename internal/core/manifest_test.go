package core_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orbis/internal/core"
	"orbis/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadManifest_RequiredFieldsOnly(t *testing.T) {
	path := writeZip(t, filepath.Join(t.TempDir(), "mod.jar"), map[string][]byte{
		"manifest.json": manifestJSON("Hytale", "Core", "1.2.3"),
	})

	m, err := core.ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "Hytale", m.Group)
	assert.Equal(t, "Core", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "Hytale:Core", m.Identity())

	assert.Empty(t, m.Description)
	assert.Empty(t, m.Authors)
	assert.Nil(t, m.Website)
	assert.Empty(t, m.ServerVersion)
	assert.NotNil(t, m.Dependencies)
	assert.Empty(t, m.Dependencies)
	assert.Empty(t, m.OptionalDependencies)
	assert.False(t, m.DisabledByDefault)
	assert.Empty(t, m.Main)
	assert.False(t, m.IncludesAssetPack)
}

func TestReadManifest_AllFields(t *testing.T) {
	content := `{
  "Group": "Acme",
  "Name": "Tools",
  "Version": "2.0.0",
  "Description": "Handy tools",
  "Authors": [{"Name": "alice"}, {"Name": "bob"}],
  "Website": "https://acme.example",
  "ServerVersion": "2026.1",
  "Dependencies": {"Hytale:Core": ">=1.0"},
  "OptionalDependencies": {"Acme:Extras": "*"},
  "DisabledByDefault": true,
  "Main": "com.acme.tools.Main",
  "IncludesAssetPack": true
}`
	path := writeZip(t, filepath.Join(t.TempDir(), "tools.jar"), map[string][]byte{
		"manifest.json": []byte(content),
	})

	m, err := core.ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "Handy tools", m.Description)
	assert.Equal(t, []string{"alice", "bob"}, m.AuthorNames())
	require.NotNil(t, m.Website)
	assert.Equal(t, "https://acme.example", *m.Website)
	assert.Equal(t, "2026.1", m.ServerVersion)
	assert.Equal(t, ">=1.0", m.Dependencies["Hytale:Core"])
	assert.Equal(t, "*", m.OptionalDependencies["Acme:Extras"])
	assert.True(t, m.DisabledByDefault)
	assert.Equal(t, "com.acme.tools.Main", m.Main)
	assert.True(t, m.IncludesAssetPack)
}

func TestReadManifest_Missing(t *testing.T) {
	path := writeZip(t, filepath.Join(t.TempDir(), "nomanifest.jar"), map[string][]byte{
		"com/example/Main.class": []byte("x"),
		"sub/manifest.json":      manifestJSON("A", "B", "1"),
	})

	_, err := core.ReadManifest(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestReadManifest_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"Group": "A",`},
		{"missing version", `{"Group": "A", "Name": "B"}`},
		{"empty name", `{"Group": "A", "Name": "", "Version": "1"}`},
		{"wrong type", `{"Group": "A", "Name": "B", "Version": "1", "DisabledByDefault": "yes"}`},
		{"authors not a list", `{"Group": "A", "Name": "B", "Version": "1", "Authors": "alice"}`},
		{"lowercase required fields", `{"group": "A", "name": "B", "version": "1"}`},
		{"miscased optional field", `{"Group": "A", "Name": "B", "Version": "1", "description": "x"}`},
		{"miscased author name", `{"Group": "A", "Name": "B", "Version": "1", "Authors": [{"name": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeZip(t, filepath.Join(t.TempDir(), "bad.jar"), map[string][]byte{
				"manifest.json": []byte(tt.content),
			})

			_, err := core.ReadManifest(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrManifestParse)
		})
	}
}

func TestReadManifest_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jar")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a zip"), 0644))

	_, err := core.ReadManifest(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArchiveOpen)
}

func TestReadManifest_NonExistent(t *testing.T) {
	_, err := core.ReadManifest(filepath.Join(t.TempDir(), "missing.jar"))
	assert.ErrorIs(t, err, domain.ErrArchiveOpen)
}

func TestReadManifest_RepeatedReads(t *testing.T) {
	path := writeModArchive(t, t.TempDir(), "mod.jar", "A", "B")

	for i := 0; i < 3; i++ {
		m, err := core.ReadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, "A:B", m.Identity())
	}
}

func TestDecodeManifest_ByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, manifestJSON("A", "B", "1")...)

	m, err := core.DecodeManifest(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "A:B", m.Identity())
}

func TestDecodeManifest_FieldNamesAreCaseSensitive(t *testing.T) {
	_, err := core.DecodeManifest(strings.NewReader(`{"group": "A", "name": "B", "version": "1"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestParse)
	assert.Contains(t, err.Error(), `"group"`)

	m, err := core.DecodeManifest(strings.NewReader(`{"Group": "A", "Name": "B", "Version": "1", "Homepage": "ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, "A:B", m.Identity())
}
