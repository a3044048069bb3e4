// Package config provides configuration file parsing for the app settings,
// per-save mod configs and the installation metadata side-car.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// ParseRootPath validates a Hytale installation root and returns the cleaned path if valid.
// It returns an error if:
//   - The path is empty
//   - The path is not absolute (after ~ expansion)
//   - The path contains parent directory traversal (..)
//   - The directory does not exist
//   - The path points to a file instead of a directory
func ParseRootPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("hytale root cannot be empty")
	}

	path = ExpandPath(path)

	if !filepath.IsAbs(path) {
		return "", errors.New("hytale root must be absolute")
	}

	if strings.Contains(path, "..") {
		return "", errors.New("hytale root contains invalid traversal")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("hytale root does not exist")
		}
		return "", err
	}

	if !info.IsDir() {
		return "", errors.New("hytale root is a file, not a directory")
	}

	return filepath.Clean(path), nil
}
