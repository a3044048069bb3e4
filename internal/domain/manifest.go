package domain

import (
	"fmt"
	"strings"
)

// ManifestFileName is the entry every mod archive carries at its root
const ManifestFileName = "manifest.json"

// Author is a single entry of a manifest's author list
type Author struct {
	Name string `json:"Name"`
}

// Manifest describes one mod as declared inside its archive.
// Only Group, Name and Version are required; everything else defaults to its zero value.
type Manifest struct {
	Group                string            `json:"Group"`
	Name                 string            `json:"Name"`
	Version              string            `json:"Version"`
	Description          string            `json:"Description"`
	Authors              []Author          `json:"Authors"`
	Website              *string           `json:"Website,omitempty"`
	ServerVersion        string            `json:"ServerVersion"`
	Dependencies         map[string]string `json:"Dependencies"`
	OptionalDependencies map[string]string `json:"OptionalDependencies"`
	DisabledByDefault    bool              `json:"DisabledByDefault"`
	Main                 string            `json:"Main"`
	IncludesAssetPack    bool              `json:"IncludesAssetPack"`
}

// Identity returns the Group:Name key used by every store
func (m *Manifest) Identity() string {
	return ModIdentity(m.Group, m.Name)
}

// Validate checks the required fields are present
func (m *Manifest) Validate() error {
	var missing []string
	if m.Group == "" {
		missing = append(missing, "Group")
	}
	if m.Name == "" {
		missing = append(missing, "Name")
	}
	if m.Version == "" {
		missing = append(missing, "Version")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Normalize replaces absent collections with empty ones so callers never see nil
func (m *Manifest) Normalize() {
	if m.Authors == nil {
		m.Authors = []Author{}
	}
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	if m.OptionalDependencies == nil {
		m.OptionalDependencies = map[string]string{}
	}
}

// AuthorNames returns the author names in declaration order
func (m *Manifest) AuthorNames() []string {
	names := make([]string, 0, len(m.Authors))
	for _, a := range m.Authors {
		names = append(names, a.Name)
	}
	return names
}

// ModIdentity joins a group and name into a mod identity. Case-sensitive.
func ModIdentity(group, name string) string {
	return group + ":" + name
}

// ParseModIdentity splits "Group:Name" at the first colon.
// Both halves must be non-empty.
func ParseModIdentity(identity string) (group, name string, err error) {
	group, name, ok := strings.Cut(identity, ":")
	if !ok || group == "" || name == "" {
		return "", "", fmt.Errorf("invalid mod identity %q: expected Group:Name", identity)
	}
	return group, name, nil
}
