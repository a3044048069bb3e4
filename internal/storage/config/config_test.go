package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"orbis/internal/domain"
	"orbis/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.HytaleRoot)
	assert.Empty(t, cfg.DefaultSave)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
hytale_root: /games/hytale
default_save: MyWorld
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/games/hytale", cfg.HytaleRoot)
	assert.Equal(t, "MyWorld", cfg.DefaultSave)
}

func TestLoadConfig_ExpandsTilde(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("hytale_root: ~/hytale\n"), 0644)
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.NotContains(t, cfg.HytaleRoot, "~")
	assert.Equal(t, filepath.Join(home, "hytale"), cfg.HytaleRoot)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("hytale_root: [unterminated"), 0644)
	require.NoError(t, err)

	_, err = config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "orbis")

	cfg := &config.Config{HytaleRoot: "/games/hytale", DefaultSave: "World"}
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLayoutHelpers(t *testing.T) {
	assert.Equal(t, filepath.Join("/h", "UserData", "Mods"), config.GlobalModsDir("/h"))
	assert.Equal(t, filepath.Join("/h", "UserData", "Saves"), config.SavesDir("/h"))
	assert.Equal(t, filepath.Join("/s", "mods"), config.SaveModsDir("/s"))
}

func TestLoadModConfig_Missing(t *testing.T) {
	cfg, err := config.LoadModConfig(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg.Mods)
	assert.Empty(t, cfg.Mods)
}

func TestLoadModConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"Mods": {"Hytale:Core": {"Enabled": true}, "Acme:Tools": {"Enabled": false}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644))

	cfg, err := config.LoadModConfig(dir)
	require.NoError(t, err)
	require.Len(t, cfg.Mods, 2)
	assert.True(t, cfg.Mods["Hytale:Core"].Enabled)
	assert.False(t, cfg.Mods["Acme:Tools"].Enabled)
}

func TestLoadModConfig_NoModsKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"Other": 1}`), 0644))

	cfg, err := config.LoadModConfig(dir)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Mods)
	assert.Empty(t, cfg.Mods)
}

func TestLoadModConfig_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{nope"},
		{"wrong enabled type", `{"Mods": {"A:B": {"Enabled": "yes"}}}`},
		{"mods is a list", `{"Mods": ["A:B"]}`},
		{"lowercase mods key", `{"mods": {"A:B": {"Enabled": true}}}`},
		{"lowercase enabled key", `{"Mods": {"A:B": {"enabled": true}}}`},
		{"lowercase keys", `{"mods": {"A:B": {"enabled": true}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(tt.content), 0644))

			_, err := config.LoadModConfig(dir)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfigParse)
		})
	}
}

func TestSaveModConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := &domain.ModConfig{Mods: map[string]domain.ModConfigEntry{
		"Hytale:Core": {Enabled: true},
		"Acme:Tools":  {Enabled: false},
	}}
	require.NoError(t, config.SaveModConfig(dir, cfg))

	loaded, err := config.LoadModConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Mods"`)
	assert.Contains(t, string(data), `"Enabled": true`)
}

func TestSaveModConfig_NilMods(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.SaveModConfig(dir, &domain.ModConfig{}))

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Mods": {}}`, string(data))
}

func TestSaveModConfig_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	err := config.SaveModConfig(dir, domain.NewModConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigWrite)
}

func TestLoadInstallMetadata_Missing(t *testing.T) {
	entries, err := config.LoadInstallMetadata(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadInstallMetadata_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "core-1.0.jar": {
    "id": "abc",
    "slug": "core",
    "name": "Core",
    "author": "hytale",
    "iconUrl": "https://cdn.example/core.png",
    "version": "1.0",
    "installedAt": "2026-01-02T03:04:05Z"
  },
  "tools.zip": {"id": "def", "name": "Tools", "author": "acme", "version": "2.0", "installedAt": "2026-02-01"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orbis-metadata.json"), []byte(content), 0644))

	entries, err := config.LoadInstallMetadata(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	core := entries["core-1.0.jar"]
	assert.Equal(t, "abc", core.ID)
	require.NotNil(t, core.Slug)
	assert.Equal(t, "core", *core.Slug)
	require.NotNil(t, core.IconURL)

	tools := entries["tools.zip"]
	assert.Nil(t, tools.Slug)
	assert.Nil(t, tools.IconURL)
	assert.Equal(t, "2026-02-01", tools.InstalledAt)
}

func TestLoadInstallMetadata_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orbis-metadata.json"), []byte("[1,2"), 0644))

	_, err := config.LoadInstallMetadata(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing orbis-metadata.json")
}

func TestSaveInstallMetadata_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := map[string]domain.InstallMetadata{
		"a.jar": {ID: "1", Name: "A", Author: "x", Version: "1", InstalledAt: "now"},
	}
	require.NoError(t, config.SaveInstallMetadata(dir, entries))

	loaded, err := config.LoadInstallMetadata(dir)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}
