// internal/platform/fsx/discover.go
package fsx

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover walks every existing root depth-first and returns the absolute paths
// of regular files whose base name matches any of the glob patterns.
// Roots are visited in the given order and entries in directory listing order.
// Symbolic links are never followed, unreadable directories are skipped.
func Discover(roots, patterns []string) ([]string, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid filename pattern %q", p)
		}
	}

	var found []string
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		info, err := os.Lstat(abs)
		if err != nil || !info.IsDir() {
			continue
		}

		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != abs {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if matchAny(patterns, d.Name()) {
				found = append(found, path)
			}
			return nil
		})
	}

	return found, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
