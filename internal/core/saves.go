package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"orbis/internal/domain"
	"orbis/internal/storage/config"

	"github.com/charmbracelet/log"
)

// SaveInfo describes one save folder
type SaveInfo struct {
	Name         string
	Path         string
	EnabledMods  int
	ConfigErr    error // set when config.json could not be read
	HasLocalMods bool
}

// Saves imports and lists save folders
type Saves struct {
	extractor *Extractor
	logger    *log.Logger
}

// NewSaves creates a Saves helper. A nil logger discards output.
func NewSaves(logger *log.Logger) *Saves {
	return &Saves{
		extractor: NewExtractor(),
		logger:    orDiscard(logger),
	}
}

// Import extracts a save archive into savesDir/<archive name without extension>
// and returns the new save's name
func (s *Saves) Import(zipPath, savesDir string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFileName, filepath.Base(zipPath))
	}

	target := filepath.Join(savesDir, name)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrSaveExists, name)
	}

	n, err := s.extractor.ExtractZip(zipPath, target)
	if err != nil {
		return "", err
	}

	s.logger.Debug("imported save", "name", name, "files", n)
	return name, nil
}

// List returns the save folders in savesDir sorted by name.
// A missing savesDir is an empty list.
func (s *Saves) List(savesDir string) ([]SaveInfo, error) {
	entries, err := os.ReadDir(savesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SaveInfo{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrDirectoryIO, savesDir, err)
	}

	saves := make([]SaveInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(savesDir, entry.Name())
		info := SaveInfo{Name: entry.Name(), Path: path}

		cfg, err := config.LoadModConfig(path)
		if err != nil {
			s.logger.Warn("cannot read save config", "save", entry.Name(), "err", err)
			info.ConfigErr = err
		} else {
			for _, e := range cfg.Mods {
				if e.Enabled {
					info.EnabledMods++
				}
			}
		}

		if st, err := os.Stat(config.SaveModsDir(path)); err == nil && st.IsDir() {
			info.HasLocalMods = true
		}

		saves = append(saves, info)
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Name < saves[j].Name
	})

	return saves, nil
}
