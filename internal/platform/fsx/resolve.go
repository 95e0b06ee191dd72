// Package fsx holds the filesystem side of environment validation:
// locating the tool executable, discovering its configuration files and
// observing its log file.
package fsx

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no candidate path resolves.
var ErrNotFound = errors.New("no candidate path found")

// ResolveExecutable returns the first candidate that exists, is a regular file
// and has an executable permission bit set. Candidates are tried in order and
// relative or empty entries are skipped.
func ResolveExecutable(candidates []string) (string, error) {
	for _, path := range candidates {
		if path == "" || !filepath.IsAbs(path) {
			continue
		}
		if IsExecutable(path) {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// IsExecutable reports whether path is an existing regular file with any
// execute bit set. Symlinks are followed.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
