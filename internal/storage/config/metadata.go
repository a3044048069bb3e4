package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbis/internal/domain"
)

// MetadataFileName is the provenance side-car kept in the global mods directory
const MetadataFileName = "orbis-metadata.json"

// LoadInstallMetadata reads the side-car keyed by archive filename.
// A missing file yields an empty map; a malformed one is returned as an error.
func LoadInstallMetadata(globalModsDir string) (map[string]domain.InstallMetadata, error) {
	metaPath := filepath.Join(globalModsDir, MetadataFileName)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]domain.InstallMetadata), nil
		}
		return nil, fmt.Errorf("reading %s: %w", MetadataFileName, err)
	}

	var entries map[string]domain.InstallMetadata
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MetadataFileName, err)
	}
	if entries == nil {
		entries = make(map[string]domain.InstallMetadata)
	}

	return entries, nil
}

// SaveInstallMetadata rewrites the side-car
func SaveInstallMetadata(globalModsDir string, entries map[string]domain.InstallMetadata) error {
	if entries == nil {
		entries = make(map[string]domain.InstallMetadata)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", MetadataFileName, err)
	}

	metaPath := filepath.Join(globalModsDir, MetadataFileName)
	if err := os.WriteFile(metaPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", MetadataFileName, err)
	}

	return nil
}
