package core

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"orbis/internal/domain"
	"orbis/internal/storage/config"

	"github.com/charmbracelet/log"
)

// Modpack folder prefixes
const (
	modpackModsPrefix    = "Mods/"
	modpackConfigsPrefix = "Configs/"
)

// InstalledArchive is a mod archive copied out of a modpack whose manifest was read
type InstalledArchive struct {
	FileName string // path relative to the global mods directory
	Identity string
	Manifest *domain.Manifest
}

// ModpackResult summarizes one modpack install
type ModpackResult struct {
	Installed     []InstalledArchive
	ModFiles      int           // files written to the global mods directory
	ConfigFiles   int           // files written to the save's mods folder
	Skipped       []ScanFailure // copied archives whose manifest could not be read
	SourceRemoved bool
}

// Identities returns the identities enabled by the install, in archive order
func (r *ModpackResult) Identities() []string {
	ids := make([]string, 0, len(r.Installed))
	for _, a := range r.Installed {
		ids = append(ids, a.Identity)
	}
	return ids
}

// ModpackInstaller unpacks modpack bundles.
// Installs are not transactional: files extracted before a failure stay in place.
type ModpackInstaller struct {
	extractor *Extractor
	logger    *log.Logger
}

// NewModpackInstaller creates a ModpackInstaller. A nil logger discards output.
func NewModpackInstaller(logger *log.Logger) *ModpackInstaller {
	return &ModpackInstaller{
		extractor: NewExtractor(),
		logger:    orDiscard(logger),
	}
}

// Install unpacks packPath: Mods/ entries go to globalDir, nested Configs/ archives are
// unpacked into the save's mods folder, every mod with a readable manifest is enabled in
// the save config with a single write, and finally the modpack file itself is removed.
func (i *ModpackInstaller) Install(packPath, globalDir, saveDir string) (*ModpackResult, error) {
	saveModsDir := config.SaveModsDir(saveDir)
	for _, dir := range []string{globalDir, saveModsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %w", domain.ErrDirectoryIO, dir, err)
		}
	}

	result := &ModpackResult{}
	if err := i.unpack(packPath, globalDir, saveModsDir, result); err != nil {
		return result, err
	}

	if len(result.Installed) > 0 {
		if err := enableAll(saveDir, result.Identities()); err != nil {
			return result, err
		}
	}

	if err := os.Remove(packPath); err != nil {
		i.logger.Warn("cannot remove modpack after install", "path", packPath, "err", err)
	} else {
		result.SourceRemoved = true
	}

	return result, nil
}

func (i *ModpackInstaller) unpack(packPath, globalDir, saveModsDir string, result *ModpackResult) (err error) {
	r, err := zip.OpenReader(packPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrArchiveOpen, packPath, err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: closing %s: %w", domain.ErrArchiveOpen, packPath, cerr)
		}
	}()

	for _, f := range r.File {
		if isDirEntry(f) {
			continue
		}

		name := strings.ReplaceAll(f.Name, `\`, "/")
		switch {
		case strings.HasPrefix(name, modpackModsPrefix):
			if err := i.installMod(f, strings.TrimPrefix(name, modpackModsPrefix), globalDir, result); err != nil {
				return err
			}
		case strings.HasPrefix(name, modpackConfigsPrefix) && IsModArchive(name):
			n, err := i.installConfigArchive(f, saveModsDir)
			result.ConfigFiles += n
			if err != nil {
				return err
			}
		default:
			i.logger.Debug("ignoring modpack entry", "entry", f.Name)
		}
	}

	return nil
}

// installMod copies one Mods/ entry into globalDir and reads its manifest when it is an archive
func (i *ModpackInstaller) installMod(f *zip.File, rel, globalDir string, result *ModpackResult) error {
	if rel == "" {
		return nil
	}

	destPath, err := i.extractor.sanitizePath(globalDir, rel)
	if err != nil {
		return err
	}
	if err := i.extractor.WriteEntry(f, destPath); err != nil {
		return err
	}
	result.ModFiles++

	if !IsModArchive(destPath) {
		return nil
	}

	manifest, err := ReadManifest(destPath)
	if err != nil {
		i.logger.Warn("installed archive has no usable manifest", "path", destPath, "err", err)
		result.Skipped = append(result.Skipped, ScanFailure{Path: destPath, Err: err})
		return nil
	}

	result.Installed = append(result.Installed, InstalledArchive{
		FileName: filepath.ToSlash(rel),
		Identity: manifest.Identity(),
		Manifest: manifest,
	})
	return nil
}

// installConfigArchive unpacks a nested Configs/ archive into the save's mods folder
func (i *ModpackInstaller) installConfigArchive(f *zip.File, saveModsDir string) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("%w: opening %s in modpack: %w", domain.ErrArchiveOpen, f.Name, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s in modpack: %w", domain.ErrArchiveOpen, f.Name, err)
	}

	nested, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: nested archive %s: %w", domain.ErrArchiveOpen, f.Name, err)
	}

	n, err := i.extractor.ExtractReader(nested, saveModsDir)
	if err != nil {
		return n, fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	i.logger.Debug("unpacked config archive", "entry", f.Name, "files", n)
	return n, nil
}

// enableAll sets Enabled=true for every identity in one read-modify-write of the save config
func enableAll(saveDir string, identities []string) error {
	cfg, err := config.LoadModConfig(saveDir)
	if err != nil {
		return err
	}
	for _, id := range identities {
		cfg.Mods[id] = domain.ModConfigEntry{Enabled: true}
	}
	if err := config.SaveModConfig(saveDir, cfg); err != nil {
		return errors.Join(err, fmt.Errorf("%d mod(s) were extracted but not enabled", len(identities)))
	}
	return nil
}
