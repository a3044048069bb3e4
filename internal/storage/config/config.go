package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds global application settings
type Config struct {
	HytaleRoot  string `yaml:"hytale_root"`
	DefaultSave string `yaml:"default_save,omitempty"`
}

// Load reads configuration from the given directory
func Load(configDir string) (*Config, error) {
	cfg := &Config{}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.HytaleRoot = ExpandPath(cfg.HytaleRoot)

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GlobalModsDir returns <root>/UserData/Mods
func GlobalModsDir(hytaleRoot string) string {
	return filepath.Join(hytaleRoot, "UserData", "Mods")
}

// SavesDir returns <root>/UserData/Saves
func SavesDir(hytaleRoot string) string {
	return filepath.Join(hytaleRoot, "UserData", "Saves")
}

// SaveModsDir returns the save-local mods folder
func SaveModsDir(saveDir string) string {
	return filepath.Join(saveDir, "mods")
}
