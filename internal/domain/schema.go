package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

var (
	manifestFields = []string{
		"Group", "Name", "Version", "Description", "Authors", "Website", "ServerVersion",
		"Dependencies", "OptionalDependencies", "DisabledByDefault", "Main", "IncludesAssetPack",
	}
	authorFields      = []string{"Name"}
	modConfigFields   = []string{"Mods"}
	configEntryFields = []string{"Enabled"}
)

// CheckManifestKeys rejects manifest.json keys that name a field with the wrong case.
// encoding/json would otherwise bind "group" to Group.
func CheckManifestKeys(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if err := checkFieldCase(obj, manifestFields); err != nil {
		return err
	}

	raw, ok := obj["Authors"]
	if !ok {
		return nil
	}
	var authors []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &authors); err != nil {
		return fmt.Errorf("in Authors: %w", err)
	}
	for _, a := range authors {
		if err := checkFieldCase(a, authorFields); err != nil {
			return fmt.Errorf("in Authors: %w", err)
		}
	}
	return nil
}

// CheckModConfigKeys rejects config.json keys that name a field with the wrong case
func CheckModConfigKeys(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if err := checkFieldCase(obj, modConfigFields); err != nil {
		return err
	}

	raw, ok := obj["Mods"]
	if !ok {
		return nil
	}
	var mods map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &mods); err != nil {
		return fmt.Errorf("in Mods: %w", err)
	}
	for id, entry := range mods {
		if err := checkFieldCase(entry, configEntryFields); err != nil {
			return fmt.Errorf("in Mods[%q]: %w", id, err)
		}
	}
	return nil
}

// checkFieldCase fails on any key equal to a field name only under case folding
func checkFieldCase(obj map[string]json.RawMessage, fields []string) error {
	for key := range obj {
		for _, field := range fields {
			if key != field && strings.EqualFold(key, field) {
				return fmt.Errorf("unknown field %q (did you mean %q?)", key, field)
			}
		}
	}
	return nil
}
