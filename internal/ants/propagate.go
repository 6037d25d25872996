package ants

import (
	"path/filepath"
)

// PropagateOptions configure label propagation through a mask.
type PropagateOptions struct {
	MaskVolume  string
	LabelVolume string // integer labels seeding the propagation
	MaskIndex   int    // restrict the mask to voxels with this value; 0 = whole mask
	OutputFile  string // defaults to PropagateLabelsThroughMask.nii.gz in the working dir
	Binarize    bool   // binarize MaskVolume first
}

// PropagateLabels fills a binary mask with the seed labels via the
// ImageMath PropagateLabelsThroughMask operation, optionally binarizing
// the mask or selecting a single mask value first.
func (r *Runner) PropagateLabels(opts PropagateOptions) (string, error) {
	output := opts.OutputFile
	if output == "" {
		output = defaultOutput("PropagateLabelsThroughMask.nii.gz")
	}

	mask := opts.MaskVolume
	if opts.Binarize {
		binarized := filepath.Join(filepath.Dir(output), "binarized_mask.nii.gz")
		if _, err := r.Binarize(mask, binarized); err != nil {
			return "", err
		}
		mask = binarized
	}

	if opts.MaskIndex != 0 {
		selected := filepath.Join(filepath.Dir(output), "mask_index.nii.gz")
		if _, err := r.SelectLabel(mask, selected, opts.MaskIndex); err != nil {
			return "", err
		}
		mask = selected
	}

	args := []string{"3", output, "PropagateLabelsThroughMask", mask, opts.LabelVolume}
	if err := r.run("ImageMath", args); err != nil {
		return "", err
	}
	if err := requireOutputs(output); err != nil {
		return "", err
	}
	return output, nil
}
