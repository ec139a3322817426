package compdb

import (
	"path/filepath"
)

// PathNormalizer converts a path into its canonical absolute form. It is
// passed explicitly through LoadOptions and ProjectConfig rather than
// living in package state, so tests can substitute a deterministic
// variant that never touches the filesystem.
type PathNormalizer func(path string) string

// NormalizePath is the default normalization strategy: absolutize against
// the current working directory and clean the result.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// MarkedNormalizer prefixes a sentinel instead of resolving the path, so
// tests can verify exactly which strings were normalized without any disk
// dependence.
func MarkedNormalizer(path string) string {
	return "&" + path
}
