package ants

import (
	"os"
	"path/filepath"
	"strings"
)

// workingDir returns the current directory, falling back to "." so path
// joins stay relative rather than failing.
func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// defaultOutput places a derived output filename in the working directory,
// matching the historical behavior of the toolkit wrappers.
func defaultOutput(name string) string {
	return filepath.Join(workingDir(), name)
}

// stemBase returns the basename of path cut at the first dot, so
// "sub01/t1weighted.nii.gz" becomes "t1weighted".
func stemBase(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}
