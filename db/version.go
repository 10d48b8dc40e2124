package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const VersionFile = ".db-version"

// Version is the schema version the node recorded next to its database.
type Version struct {
	Number uint32 `json:"number" yaml:"number"`
	Source string `json:"source" yaml:"source"`
}

// DetectVersion reads the version file from dbPath or its parent directory.
// It returns ErrKeyNotFound when neither has one and ErrInvalidDBVersion when
// the file does not hold a number.
func DetectVersion(dbPath string) (*Version, error) {
	for _, dir := range []string{dbPath, filepath.Dir(dbPath)} {
		source := filepath.Join(dir, VersionFile)
		content, err := os.ReadFile(source)
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}

		n, err := strconv.ParseUint(strings.TrimSpace(string(content)), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrInvalidDBVersion, source, err)
		}
		return &Version{Number: uint32(n), Source: source}, nil
	}
	return nil, fmt.Errorf("%w: no %s in %s or its parent", ErrKeyNotFound, VersionFile, dbPath)
}
