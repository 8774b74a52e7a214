package project

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestName is the file that marks a project directory.
const ManifestName = "sus.toml"

// FindManifest returns the nearest sus.toml in startDir or one of its
// parents. ok is false when the walk reaches the filesystem root without
// finding one; "" starts at the working directory.
func FindManifest(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		path = filepath.Join(dir, ManifestName)
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return "", false, err
		case !info.IsDir():
			return path, true, nil
		}
	}
	return "", false, nil
}
