// Package mesh adapts external surface-mesh tooling to the SurfaceMapper
// and LabelMerger collaborators used by label filling. The conversions are
// opaque: antler stages arguments for helper binaries and checks that the
// promised output files appear, nothing more.
package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	e "antler/pkg/errors"
	xexec "antler/pkg/exec"
	"antler/pkg/logger"
)

// Default helper binary names, overridable through configuration.
const (
	DefaultMapperTool = "surface2volume"
	DefaultMergerTool = "overwrite-labels"
)

// CommandMapper renders a labeled surface into a reference volume's grid by
// invoking an external conversion tool:
//
//	<tool> <surface> <reference> <output>
type CommandMapper struct {
	Tool   string
	OutDir string // defaults to the working directory
}

// NewCommandMapper returns a mapper for the given tool, or the default.
func NewCommandMapper(tool string) *CommandMapper {
	if tool == "" {
		tool = DefaultMapperTool
	}
	return &CommandMapper{Tool: tool}
}

// ToVolume maps surface into reference's voxel grid and returns the label
// volume path.
func (m *CommandMapper) ToVolume(surface, reference string) (string, error) {
	dir := m.OutDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	output := filepath.Join(dir, fmt.Sprintf("%s_in_%s.nii.gz", baseName(surface), baseName(reference)))

	logger.Verbosef("exec: %s %s", m.Tool, xexec.JoinArgs([]string{surface, reference, output}))
	if _, err := xexec.Run(m.Tool, []string{surface, reference, output}, xexec.Options{Quiet: true}); err != nil {
		return "", e.Wrap(err, e.ErrInvocationFailed, "Surface-to-volume mapping failed").
			WithContext("tool", m.Tool).
			WithContext("surface", surface)
	}
	if _, err := os.Stat(output); err != nil {
		return "", e.New(e.ErrOutputMissing, fmt.Sprintf("%s not found", output))
	}
	return output, nil
}

// CommandMerger overwrites labels in a base volume with an overlay volume
// via an external tool:
//
//	<tool> <base> <overlay> <output> --ignore 0,...
type CommandMerger struct {
	Tool string
}

// NewCommandMerger returns a merger for the given tool, or the default.
func NewCommandMerger(tool string) *CommandMerger {
	if tool == "" {
		tool = DefaultMergerTool
	}
	return &CommandMerger{Tool: tool}
}

// Overwrite writes overlay labels over base, skipping the ignored values.
func (m *CommandMerger) Overwrite(base, overlay, output string, ignore []int) (string, error) {
	args := []string{base, overlay, output}
	if len(ignore) > 0 {
		vals := make([]string, len(ignore))
		for i, v := range ignore {
			vals[i] = strconv.Itoa(v)
		}
		args = append(args, "--ignore", strings.Join(vals, ","))
	}

	logger.Verbosef("exec: %s %s", m.Tool, xexec.JoinArgs(args))
	if _, err := xexec.Run(m.Tool, args, xexec.Options{Quiet: true}); err != nil {
		return "", e.Wrap(err, e.ErrInvocationFailed, "Label overwrite failed").
			WithContext("tool", m.Tool)
	}
	if _, err := os.Stat(output); err != nil {
		return "", e.New(e.ErrOutputMissing, fmt.Sprintf("%s not found", output))
	}
	return output, nil
}

// baseName trims the directory and every extension, so "lh.labels.vtk"
// becomes "lh" and "t1weighted.nii.gz" becomes "t1weighted".
func baseName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}
