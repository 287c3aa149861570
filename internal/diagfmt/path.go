package diagfmt

import (
	"os"
	"path/filepath"
)

func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		base := baseDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return path
			}
			base = wd
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
