package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbis/internal/domain"

	"github.com/charmbracelet/log"
)

// ScanFailure records an archive that was skipped and why
type ScanFailure struct {
	Path string
	Err  error
}

// ScannedArchive is an archive whose manifest was read successfully
type ScannedArchive struct {
	Path     string
	Size     int64
	Manifest *domain.Manifest
}

// ScanResult is the outcome of one directory scan: the successes and, separately, the skips
type ScanResult struct {
	Archives []ScannedArchive
	Failures []ScanFailure
}

// IndexEntry locates the archive backing a mod identity
type IndexEntry struct {
	Path     string
	Manifest *domain.Manifest
}

// Index maps mod identity to archive. It is a snapshot and is never cached.
type Index struct {
	Mods     map[string]IndexEntry
	Failures []ScanFailure
}

// Lookup returns the entry for an identity
func (idx *Index) Lookup(identity string) (IndexEntry, bool) {
	e, ok := idx.Mods[identity]
	return e, ok
}

// Len returns the number of indexed identities
func (idx *Index) Len() int {
	return len(idx.Mods)
}

// Indexer scans a mods directory for archives and their manifests
type Indexer struct {
	logger *log.Logger
}

// NewIndexer creates an Indexer. A nil logger discards output.
func NewIndexer(logger *log.Logger) *Indexer {
	return &Indexer{logger: orDiscard(logger)}
}

// Scan reads the manifest of every .jar/.zip file directly inside dir.
// A missing directory is an empty result. Archives that cannot be read are logged
// and reported in Failures; they never fail the scan.
func (x *Indexer) Scan(dir string) (*ScanResult, error) {
	result := &ScanResult{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrDirectoryIO, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsModArchive(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		manifest, err := ReadManifest(path)
		if err != nil {
			x.logger.Warn("skipping archive", "path", path, "err", err)
			result.Failures = append(result.Failures, ScanFailure{Path: path, Err: err})
			continue
		}

		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		result.Archives = append(result.Archives, ScannedArchive{
			Path:     path,
			Size:     size,
			Manifest: manifest,
		})
	}

	return result, nil
}

// Build scans dir and folds the archives into an identity index.
// Duplicate identities overwrite earlier ones in directory order.
func (x *Indexer) Build(dir string) (*Index, error) {
	scan, err := x.Scan(dir)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Mods:     make(map[string]IndexEntry, len(scan.Archives)),
		Failures: scan.Failures,
	}
	for _, a := range scan.Archives {
		id := a.Manifest.Identity()
		if prev, ok := idx.Mods[id]; ok {
			x.logger.Debug("duplicate mod identity", "identity", id, "replaced", prev.Path, "by", a.Path)
		}
		idx.Mods[id] = IndexEntry{Path: a.Path, Manifest: a.Manifest}
	}

	return idx, nil
}
