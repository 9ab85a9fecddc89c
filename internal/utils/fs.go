// Package utils holds small file and TOML helpers shared by the loaders.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Ext returns the lower cased extension of path without the dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}
	return nil
}

// SaveTOMLFile encodes data into a new file at path.
func SaveTOMLFile(data any, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(data); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}

// AbsPath returns path made absolute, or "unknown" for an empty path.
func AbsPath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ExecutableDir is the directory of the running binary, the last resort
// for placing the config file.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate executable")
	}
	return filepath.Dir(exe), nil
}

// WritableDir creates dir if needed and reports whether files can be
// written into it.
func WritableDir(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return false
	}
	probe := filepath.Join(dir, ".write_test")
	file, err := os.Create(probe)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		return false
	}
	file.Close()
	os.Remove(probe)
	return true
}
