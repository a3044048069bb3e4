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

// Registration is the outcome of registering one archive with a save
type Registration struct {
	Manifest *domain.Manifest
	Path     string // where the archive was found
	Added    bool   // false when the save already had an entry for the identity
}

// Reconciler derives per-save mod views from a save's config and the global archive store
type Reconciler struct {
	indexer *Indexer
	logger  *log.Logger
}

// NewReconciler creates a Reconciler. A nil logger discards output.
func NewReconciler(logger *log.Logger) *Reconciler {
	logger = orDiscard(logger)
	return &Reconciler{
		indexer: NewIndexer(logger),
		logger:  logger,
	}
}

// InstalledMods returns the mods enabled for a save that have a backing archive in globalDir.
// A save with no config entries returns immediately without touching globalDir.
func (r *Reconciler) InstalledMods(saveDir, globalDir string) ([]domain.InstalledMod, error) {
	cfg, err := config.LoadModConfig(saveDir)
	if err != nil {
		return nil, err
	}
	if len(cfg.Mods) == 0 {
		return []domain.InstalledMod{}, nil
	}

	metadata := r.metadata(globalDir)

	idx, err := r.indexer.Build(globalDir)
	if err != nil {
		return nil, err
	}

	mods := make([]domain.InstalledMod, 0, len(cfg.Mods))
	for identity, entry := range cfg.Mods {
		if !entry.Enabled {
			continue
		}

		found, ok := idx.Lookup(identity)
		if !ok {
			r.logger.Warn("enabled mod has no archive in global mods", "identity", identity, "dir", globalDir)
			continue
		}

		fileName := filepath.Base(found.Path)
		view := domain.InstalledMod{
			FileName: fileName,
			Manifest: *found.Manifest,
		}
		if meta, ok := metadata[fileName]; ok {
			view.Metadata = &meta
		}
		mods = append(mods, view)
	}

	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Identity() < mods[j].Identity()
	})

	return mods, nil
}

// GlobalMods lists every readable archive in globalDir with its manifest and metadata,
// sorted by file name
func (r *Reconciler) GlobalMods(globalDir string) ([]domain.GlobalMod, error) {
	scan, err := r.indexer.Scan(globalDir)
	if err != nil {
		return nil, err
	}

	metadata := r.metadata(globalDir)

	mods := make([]domain.GlobalMod, 0, len(scan.Archives))
	for _, a := range scan.Archives {
		fileName := filepath.Base(a.Path)
		gm := domain.GlobalMod{
			FileName: fileName,
			Path:     a.Path,
			Size:     a.Size,
			Manifest: *a.Manifest,
		}
		if meta, ok := metadata[fileName]; ok {
			gm.Metadata = &meta
		}
		mods = append(mods, gm)
	}

	sort.Slice(mods, func(i, j int) bool {
		return mods[i].FileName < mods[j].FileName
	})

	return mods, nil
}

// SetEnabled upserts a single config entry. Writing the same state twice is a no-op.
func (r *Reconciler) SetEnabled(saveDir, identity string, enabled bool) error {
	if _, _, err := domain.ParseModIdentity(identity); err != nil {
		return err
	}

	cfg, err := config.LoadModConfig(saveDir)
	if err != nil {
		return err
	}

	if entry, ok := cfg.Mods[identity]; ok && entry.Enabled == enabled {
		return nil
	}

	cfg.Mods[identity] = domain.ModConfigEntry{Enabled: enabled}
	return config.SaveModConfig(saveDir, cfg)
}

// AddIfAbsent inserts identity as enabled when the save has no entry for it.
// An existing entry, enabled or not, is left untouched.
func (r *Reconciler) AddIfAbsent(saveDir, identity string) (bool, error) {
	if _, _, err := domain.ParseModIdentity(identity); err != nil {
		return false, err
	}

	cfg, err := config.LoadModConfig(saveDir)
	if err != nil {
		return false, err
	}

	if _, ok := cfg.Mods[identity]; ok {
		return false, nil
	}

	cfg.Mods[identity] = domain.ModConfigEntry{Enabled: true}
	if err := config.SaveModConfig(saveDir, cfg); err != nil {
		return false, err
	}
	return true, nil
}

// RegisterArchive reads the manifest of fileName, looking in the save's mods folder first
// and then in globalDir, and adds its identity to the save config if absent
func (r *Reconciler) RegisterArchive(saveDir, globalDir, fileName string) (*Registration, error) {
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}

	path, err := locateArchive(fileName, config.SaveModsDir(saveDir), globalDir)
	if err != nil {
		return nil, err
	}

	manifest, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}

	added, err := r.AddIfAbsent(saveDir, manifest.Identity())
	if err != nil {
		return nil, err
	}
	if added {
		r.logger.Debug("registered archive", "identity", manifest.Identity(), "path", path)
	} else {
		r.logger.Debug("archive already in config", "identity", manifest.Identity())
	}

	return &Registration{Manifest: manifest, Path: path, Added: added}, nil
}

// DeleteMod removes identity from the save config and deletes fileName from the save's
// mods folder. A missing archive is not an error. An empty fileName only touches the config.
func (r *Reconciler) DeleteMod(saveDir, identity, fileName string) error {
	if fileName != "" {
		if err := validateFileName(fileName); err != nil {
			return err
		}
	}

	cfg, err := config.LoadModConfig(saveDir)
	if err != nil {
		return err
	}
	if _, ok := cfg.Mods[identity]; ok {
		delete(cfg.Mods, identity)
		if err := config.SaveModConfig(saveDir, cfg); err != nil {
			return err
		}
	}

	if fileName == "" {
		return nil
	}

	archivePath := filepath.Join(config.SaveModsDir(saveDir), fileName)
	if err := os.Remove(archivePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("mod archive already gone", "path", archivePath)
			return nil
		}
		return fmt.Errorf("%w: deleting %s: %w", domain.ErrDirectoryIO, archivePath, err)
	}

	return nil
}

// DeleteGlobalMod removes an archive from the global store and drops its metadata entry.
// Saves that enable the mod keep their config entry; reconciliation drops it from their view.
func (r *Reconciler) DeleteGlobalMod(globalDir, fileName string) error {
	if err := validateFileName(fileName); err != nil {
		return err
	}

	archivePath := filepath.Join(globalDir, fileName)
	if err := os.Remove(archivePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrArchiveNotFound, archivePath)
		}
		return fmt.Errorf("%w: deleting %s: %w", domain.ErrDirectoryIO, archivePath, err)
	}

	entries, err := config.LoadInstallMetadata(globalDir)
	if err != nil {
		r.logger.Warn("cannot read install metadata", "dir", globalDir, "err", err)
		return nil
	}
	if _, ok := entries[fileName]; !ok {
		return nil
	}
	delete(entries, fileName)
	if err := config.SaveInstallMetadata(globalDir, entries); err != nil {
		r.logger.Warn("cannot update install metadata", "dir", globalDir, "err", err)
	}

	return nil
}

// metadata reads the install metadata side-car; any failure is logged and yields an empty map
func (r *Reconciler) metadata(globalDir string) map[string]domain.InstallMetadata {
	entries, err := config.LoadInstallMetadata(globalDir)
	if err != nil {
		r.logger.Warn("ignoring install metadata", "dir", globalDir, "err", err)
		return make(map[string]domain.InstallMetadata)
	}
	return entries
}

// locateArchive returns the first dir containing a regular file named fileName
func locateArchive(fileName string, dirs ...string) (string, error) {
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not in %s", domain.ErrArchiveNotFound, fileName, strings.Join(dirs, " or "))
}

func validateFileName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFileName, name)
	}
	return nil
}
