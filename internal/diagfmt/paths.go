package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// autoBasenameLen is the length above which PathModeAuto falls back to the
// basename of a path outside the base directory.
const autoBasenameLen = 40

func formatPath(path string, mode PathMode, baseDir string) string {
	// <from source>, <stdlib>/...
	if strings.HasPrefix(path, "<") {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if rel, ok := relativeTo(path, baseDir); ok {
			return rel
		}
		return path
	default:
		if rel, ok := relativeTo(path, baseDir); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
		if len(path) > autoBasenameLen {
			return filepath.Base(path)
		}
		return path
	}
}

func relativeTo(path, baseDir string) (string, bool) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		baseDir = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
