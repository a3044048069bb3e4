package domain

import "errors"

var (
	ErrArchiveOpen     = errors.New("cannot open archive")
	ErrManifestMissing = errors.New("manifest.json not found in archive")
	ErrManifestParse   = errors.New("invalid manifest")
	ErrConfigParse     = errors.New("invalid mod config")
	ErrConfigWrite     = errors.New("cannot write mod config")
	ErrDirectoryIO     = errors.New("directory I/O failed")
	ErrArchiveNotFound = errors.New("archive not found")
	ErrInvalidFileName = errors.New("invalid archive file name")
	ErrSaveExists      = errors.New("save already exists")
	ErrSaveNotFound    = errors.New("save not found")
	ErrNoHytaleRoot    = errors.New("hytale root not configured")
)
