package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the data directory used when DATA_DIR is unset:
// a "data" directory next to the running executable. If the executable
// path cannot be determined it falls back to "./data".
func DefaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "data"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "data")
}

// dataFile returns path when set, otherwise name inside dataDir.
func dataFile(path, dataDir, name string) string {
	if path != "" {
		return path
	}
	return filepath.Join(dataDir, name)
}
