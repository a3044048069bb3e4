package core

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"orbis/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadManifest opens a mod archive and decodes its root manifest.json.
// The archive is closed before returning on every path.
func ReadManifest(archivePath string) (m *domain.Manifest, err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrArchiveOpen, archivePath, err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: closing %s: %w", domain.ErrArchiveOpen, archivePath, cerr)
		}
	}()

	return readManifest(&r.Reader, archivePath)
}

func readManifest(zr *zip.Reader, archivePath string) (*domain.Manifest, error) {
	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == domain.ManifestFileName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrManifestMissing, archivePath)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening manifest in %s: %w", domain.ErrArchiveOpen, archivePath, err)
	}
	defer rc.Close()

	m, err := DecodeManifest(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archivePath, err)
	}
	return m, nil
}

// DecodeManifest parses manifest.json contents. Optional fields default to empty values;
// wrong types, miscased field names or a missing Group, Name or Version fail with
// domain.ErrManifestParse.
func DecodeManifest(r io.Reader) (*domain.Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest: %w", domain.ErrManifestParse, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if err := domain.CheckManifestKeys(data); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrManifestParse, err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrManifestParse, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrManifestParse, err)
	}
	m.Normalize()

	return &m, nil
}
