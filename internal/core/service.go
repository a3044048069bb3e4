package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbis/internal/domain"
	"orbis/internal/storage/config"
	"orbis/internal/storage/db"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir  string      // Directory for config.yaml
	DataDir    string      // Directory for the install history database
	HytaleRoot string      // Overrides hytale_root from config.yaml when set
	Logger     *log.Logger // Optional; nil discards
}

// Service is the main orchestrator for mod management operations
type Service struct {
	config     *config.Config
	db         *db.DB
	reconciler *Reconciler
	installer  *ModpackInstaller
	saves      *Saves
	logger     *log.Logger

	configDir  string
	dataDir    string
	hytaleRoot string
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	// Load configuration
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	hytaleRoot := config.ExpandPath(cfg.HytaleRoot)
	if hytaleRoot == "" {
		hytaleRoot = appConfig.HytaleRoot
	}

	// Open database
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.New(filepath.Join(cfg.DataDir, "orbis.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	logger := orDiscard(cfg.Logger)

	return &Service{
		config:     appConfig,
		db:         database,
		reconciler: NewReconciler(logger),
		installer:  NewModpackInstaller(logger),
		saves:      NewSaves(logger),
		logger:     logger,
		configDir:  cfg.ConfigDir,
		dataDir:    cfg.DataDir,
		hytaleRoot: hytaleRoot,
	}, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the loaded app settings
func (s *Service) Config() *config.Config {
	return s.config
}

// SaveConfig persists the app settings
func (s *Service) SaveConfig() error {
	return s.config.Save(s.configDir)
}

// HytaleRoot returns the effective Hytale installation root (may be empty)
func (s *Service) HytaleRoot() string {
	return s.hytaleRoot
}

// GlobalModsDir returns <root>/UserData/Mods
func (s *Service) GlobalModsDir() (string, error) {
	if s.hytaleRoot == "" {
		return "", domain.ErrNoHytaleRoot
	}
	return config.GlobalModsDir(s.hytaleRoot), nil
}

// SavesDir returns <root>/UserData/Saves
func (s *Service) SavesDir() (string, error) {
	if s.hytaleRoot == "" {
		return "", domain.ErrNoHytaleRoot
	}
	return config.SavesDir(s.hytaleRoot), nil
}

// ResolveSave turns a save name or directory path into a save directory.
// Existing directories are used as-is; anything else is looked up by name in the saves dir.
func (s *Service) ResolveSave(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", fmt.Errorf("%w: no save given", domain.ErrSaveNotFound)
	}

	expanded := config.ExpandPath(nameOrPath)
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return filepath.Abs(expanded)
	}

	savesDir, err := s.SavesDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(savesDir, nameOrPath)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", domain.ErrSaveNotFound, nameOrPath)
	}
	return path, nil
}

// InstalledMods lists the mods enabled for a save
func (s *Service) InstalledMods(savePath string) ([]domain.InstalledMod, error) {
	globalDir, err := s.GlobalModsDir()
	if err != nil {
		return nil, err
	}
	return s.reconciler.InstalledMods(savePath, globalDir)
}

// GlobalMods lists every mod archive in the global mods directory
func (s *Service) GlobalMods() ([]domain.GlobalMod, error) {
	globalDir, err := s.GlobalModsDir()
	if err != nil {
		return nil, err
	}
	return s.reconciler.GlobalMods(globalDir)
}

// RegisterArchive enables one archive for a save if the save does not know it yet
func (s *Service) RegisterArchive(savePath, fileName string) (*Registration, error) {
	globalDir, err := s.GlobalModsDir()
	if err != nil {
		return nil, err
	}

	reg, err := s.reconciler.RegisterArchive(savePath, globalDir, fileName)
	if err != nil {
		return nil, err
	}

	if reg.Added {
		s.recordInstall(&db.InstallRecord{
			Kind:     db.KindRegister,
			Source:   fileName,
			SavePath: savePath,
			Mods:     []db.HistoryMod{{Identity: reg.Manifest.Identity(), FileName: fileName}},
		})
	}

	return reg, nil
}

// InstallModpack unpacks a modpack bundle for a save
func (s *Service) InstallModpack(packPath, savePath string) (*ModpackResult, error) {
	globalDir, err := s.GlobalModsDir()
	if err != nil {
		return nil, err
	}

	result, err := s.installer.Install(packPath, globalDir, savePath)
	if err != nil {
		return result, err
	}

	mods := make([]db.HistoryMod, 0, len(result.Installed))
	for _, a := range result.Installed {
		mods = append(mods, db.HistoryMod{Identity: a.Identity, FileName: a.FileName})
	}
	s.recordInstall(&db.InstallRecord{
		Kind:        db.KindModpack,
		Source:      filepath.Base(packPath),
		SavePath:    savePath,
		Mods:        mods,
		ModFiles:    result.ModFiles,
		ConfigFiles: result.ConfigFiles,
	})

	return result, nil
}

// SetModEnabled enables or disables a mod for a save
func (s *Service) SetModEnabled(savePath, identity string, enabled bool) error {
	return s.reconciler.SetEnabled(savePath, identity, enabled)
}

// AddMod adds a mod to a save's config as enabled unless it is already listed
func (s *Service) AddMod(savePath, identity string) (bool, error) {
	return s.reconciler.AddIfAbsent(savePath, identity)
}

// DeleteMod removes a mod from a save's config and its archive from the save's mods folder
func (s *Service) DeleteMod(savePath, identity, fileName string) error {
	return s.reconciler.DeleteMod(savePath, identity, fileName)
}

// DeleteGlobalMod removes an archive from the global mods directory
func (s *Service) DeleteGlobalMod(fileName string) error {
	globalDir, err := s.GlobalModsDir()
	if err != nil {
		return err
	}
	return s.reconciler.DeleteGlobalMod(globalDir, fileName)
}

// ImportSave extracts a save archive into the saves directory
func (s *Service) ImportSave(zipPath string) (string, error) {
	savesDir, err := s.SavesDir()
	if err != nil {
		return "", err
	}
	return s.saves.Import(zipPath, savesDir)
}

// ListSaves returns the saves under the saves directory
func (s *Service) ListSaves() ([]SaveInfo, error) {
	savesDir, err := s.SavesDir()
	if err != nil {
		return nil, err
	}
	return s.saves.List(savesDir)
}

// History returns install records, newest first. An empty savePath returns all saves.
func (s *Service) History(savePath string, limit int) ([]db.InstallRecord, error) {
	return s.db.ListInstalls(savePath, limit)
}

// InstallRecord returns one history record by ID
func (s *Service) InstallRecord(id string) (*db.InstallRecord, error) {
	return s.db.GetInstall(id)
}

// recordInstall writes a history row; failures are logged, the install already happened
func (s *Service) recordInstall(rec *db.InstallRecord) {
	rec.ID = uuid.NewString()
	if err := s.db.SaveInstall(rec); err != nil {
		s.logger.Warn("cannot record install history", "source", rec.Source, "err", err)
	}
}

// IsNotConfigured reports whether err means the Hytale root is missing
func IsNotConfigured(err error) bool {
	return errors.Is(err, domain.ErrNoHytaleRoot)
}
