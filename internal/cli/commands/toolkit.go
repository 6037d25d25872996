package commands

import (
	"antler/internal/toolkit"
)

// Toolkit shows discovered ANTs installations, the active selection and
// hardware hints.
func Toolkit(args []string) error {
	m := toolkit.NewManager()
	m.ShowToolkitInfo()
	return nil
}
