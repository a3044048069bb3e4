package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"orbis/internal/domain"
)

// Extractor writes zip entries to disk
type Extractor struct{}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsModArchive reports whether a file name has a mod archive extension (.jar or .zip, any case)
func IsModArchive(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jar", ".zip":
		return true
	default:
		return false
	}
}

// ExtractZip extracts every entry of the archive at archivePath into destDir,
// recreating directory entries. Returns the number of files written.
func (e *Extractor) ExtractZip(archivePath, destDir string) (n int, err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrArchiveOpen, archivePath, err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("%w: creating destination directory: %w", domain.ErrDirectoryIO, err)
	}

	return e.extractFiles(r.File, destDir, true)
}

// ExtractReader extracts the file entries of an already opened archive into destDir.
// Directory entries are skipped; parents are created as files need them.
func (e *Extractor) ExtractReader(zr *zip.Reader, destDir string) (int, error) {
	return e.extractFiles(zr.File, destDir, false)
}

func (e *Extractor) extractFiles(files []*zip.File, destDir string, keepDirs bool) (int, error) {
	n := 0
	for _, f := range files {
		if isDirEntry(f) {
			if !keepDirs {
				continue
			}
			destPath, err := e.sanitizePath(destDir, f.Name)
			if err != nil {
				return n, err
			}
			// Use 0755 for directories to ensure we can write files into them
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return n, fmt.Errorf("%w: creating directory %s: %w", domain.ErrDirectoryIO, destPath, err)
			}
			continue
		}

		destPath, err := e.sanitizePath(destDir, f.Name)
		if err != nil {
			return n, err
		}
		if err := e.WriteEntry(f, destPath); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// WriteEntry copies a single archive entry byte-for-byte to destPath, creating parent directories
func (e *Extractor) WriteEntry(f *zip.File, destPath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %w", domain.ErrDirectoryIO, f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s in archive: %w", domain.ErrArchiveOpen, f.Name, err)
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: closing archive entry %s: %w", domain.ErrArchiveOpen, f.Name, cerr)
		}
	}()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("%w: creating file %s: %w", domain.ErrDirectoryIO, destPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: closing file %s: %w", domain.ErrDirectoryIO, destPath, cerr)
		}
	}()

	if _, err = io.Copy(outFile, rc); err != nil {
		return fmt.Errorf("%w: writing file %s: %w", domain.ErrDirectoryIO, destPath, err)
	}

	return nil
}

// sanitizePath ensures the extracted file path is within the destination directory
// This prevents "zip slip" attacks where malicious archives contain paths like "../../../etc/passwd"
func (e *Extractor) sanitizePath(destDir, filePath string) (string, error) {
	// Clean the path to remove any . or .. components
	cleanPath := filepath.Clean(filepath.FromSlash(filePath))

	// Join with destination directory
	destPath := filepath.Join(destDir, cleanPath)

	// Verify the resulting path is still within destDir
	// This catches cases like filePath = "../../../etc/passwd"
	if !strings.HasPrefix(filepath.Clean(destPath)+string(os.PathSeparator), filepath.Clean(destDir)+string(os.PathSeparator)) {
		// Also check exact match for the destDir itself
		if filepath.Clean(destPath) != filepath.Clean(destDir) {
			return "", fmt.Errorf("path traversal detected: %s", filePath)
		}
	}

	return destPath, nil
}

func isDirEntry(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}
