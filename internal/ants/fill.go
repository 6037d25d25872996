package ants

import (
	"fmt"

	e "antler/pkg/errors"
)

// SurfaceMapper renders a labeled surface mesh into the voxel grid of a
// reference volume, returning the path of the produced label volume. The
// mesh and volume formats are opaque to antler.
type SurfaceMapper interface {
	ToVolume(surface, reference string) (string, error)
}

// LabelMerger overwrites labels in a base volume with labels from an
// overlay volume, skipping the listed label values.
type LabelMerger interface {
	Overwrite(base, overlay, output string, ignore []int) (string, error)
}

// FillOptions configure filling a volume mask from surface mesh labels.
type FillOptions struct {
	VolumeMask   string
	SurfaceFiles []string
	MaskIndex    int
	OutputFile   string
	Binarize     bool
}

// FillWithSurfaceLabels maps each labeled surface into the mask's voxel
// grid, merges a second surface over the first (label 0 ignored), and
// propagates the result through the mask. Partial volume information is
// lost in the surface-to-volume mapping.
func (r *Runner) FillWithSurfaceLabels(mapper SurfaceMapper, merger LabelMerger, opts FillOptions) (string, error) {
	if len(opts.SurfaceFiles) == 0 {
		return "", e.New(e.ErrInputNotFound, "No surface files given")
	}

	labelVolume, err := mapper.ToVolume(opts.SurfaceFiles[0], opts.VolumeMask)
	if err != nil {
		return "", e.Wrap(err, e.ErrInvocationFailed,
			fmt.Sprintf("Failed to map %s into the volume grid", opts.SurfaceFiles[0]))
	}

	if len(opts.SurfaceFiles) == 2 {
		second, err := mapper.ToVolume(opts.SurfaceFiles[1], opts.VolumeMask)
		if err != nil {
			return "", e.Wrap(err, e.ErrInvocationFailed,
				fmt.Sprintf("Failed to map %s into the volume grid", opts.SurfaceFiles[1]))
		}
		merged := defaultOutput("surfaces.nii.gz")
		labelVolume, err = merger.Overwrite(labelVolume, second, merged, []int{0})
		if err != nil {
			return "", e.Wrap(err, e.ErrInvocationFailed, "Failed to merge surface label volumes")
		}
	}

	output, err := r.PropagateLabels(PropagateOptions{
		MaskVolume:  opts.VolumeMask,
		LabelVolume: labelVolume,
		MaskIndex:   opts.MaskIndex,
		OutputFile:  opts.OutputFile,
		Binarize:    opts.Binarize,
	})
	if err != nil {
		return "", err
	}
	if err := requireOutputs(output); err != nil {
		return "", err
	}
	return output, nil
}
