package domain

// ModConfigEntry is the per-mod enablement record of a save
type ModConfigEntry struct {
	Enabled bool `json:"Enabled"`
}

// ModConfig is the contents of a save's config.json
type ModConfig struct {
	Mods map[string]ModConfigEntry `json:"Mods"`
}

// NewModConfig returns an empty config
func NewModConfig() *ModConfig {
	return &ModConfig{Mods: make(map[string]ModConfigEntry)}
}

// InstallMetadata is the provenance recorded for one archive in orbis-metadata.json.
// It is keyed by archive filename, not by mod identity.
type InstallMetadata struct {
	ID          string  `json:"id"`
	Slug        *string `json:"slug,omitempty"`
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	IconURL     *string `json:"iconUrl,omitempty"`
	Version     string  `json:"version"`
	InstalledAt string  `json:"installedAt"`
}

// InstalledMod is one row of the "enabled for this save" view
type InstalledMod struct {
	FileName string           `json:"jar_name"`
	Manifest Manifest         `json:"manifest"`
	Metadata *InstallMetadata `json:"orbis_metadata,omitempty"`
}

// Identity returns the mod identity of the row
func (m *InstalledMod) Identity() string {
	return m.Manifest.Identity()
}

// GlobalMod is one readable archive in the global mods directory
type GlobalMod struct {
	FileName string           `json:"file_name"`
	Path     string           `json:"path"`
	Size     int64            `json:"size"`
	Manifest Manifest         `json:"manifest"`
	Metadata *InstallMetadata `json:"orbis_metadata,omitempty"`
}
