package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbis/internal/domain"
)

// ModConfigFileName is the per-save enablement file
const ModConfigFileName = "config.json"

// LoadModConfig reads a save's config.json.
// A missing file is the normal state of a fresh save and yields an empty config.
func LoadModConfig(saveDir string) (*domain.ModConfig, error) {
	configPath := filepath.Join(saveDir, ModConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewModConfig(), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrDirectoryIO, configPath, err)
	}

	if err := domain.CheckModConfigKeys(data); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrConfigParse, configPath, err)
	}

	cfg := domain.NewModConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrConfigParse, configPath, err)
	}
	if cfg.Mods == nil {
		cfg.Mods = make(map[string]domain.ModConfigEntry)
	}

	return cfg, nil
}

// SaveModConfig replaces the contents of a save's config.json
func SaveModConfig(saveDir string, cfg *domain.ModConfig) error {
	out := cfg
	if out.Mods == nil {
		out = domain.NewModConfig()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling: %w", domain.ErrConfigWrite, err)
	}

	configPath := filepath.Join(saveDir, ModConfigFileName)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrConfigWrite, configPath, err)
	}

	return nil
}
