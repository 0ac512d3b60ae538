// Package utils provides small helpers shared across the CLI.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading tilde and environment variables in a path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		path = s
	}
	return os.ExpandEnv(path)
}

// EnsureParentDir creates the directory a file will be written into.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// BaseWithoutExt returns a file's base name with the extension removed,
// e.g. "input/Melody.mid" -> "Melody".
func BaseWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
