package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns a user supplied path into the database directory to open. The
// path may point at the database itself or at a node base path holding it
// under db/.
func ResolvePath(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, abs)
	}

	if looksLikeDatabase(abs) {
		return abs, nil
	}
	if candidate := filepath.Join(abs, "db"); looksLikeDatabase(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %s (no CURRENT, MANIFEST or *.sst)", ErrNotADatabase, abs)
}

func looksLikeDatabase(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, "CURRENT")); err == nil && info.Mode().IsRegular() {
		return true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		// pebble keeps a MANIFEST but may not write CURRENT
		if filepath.Ext(e.Name()) == ".sst" || strings.HasPrefix(e.Name(), "MANIFEST-") {
			return true
		}
	}
	return false
}
