package utils

import (
	"io/fs"
	"path/filepath"
)

// DirSize sums the sizes of the regular files below path.
func DirSize(path string) (DataSize, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return DataSize(size), err
}
