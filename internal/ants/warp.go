package ants

import (
	"os"

	e "antler/pkg/errors"
)

// InterpNearestNeighbor is the interpolation flag used for label volumes.
const InterpNearestNeighbor = "--use-NN"

// WarpOptions configure a WarpImageMultiTransform invocation. Either
// TransformStem or both explicit transform paths must be provided.
type WarpOptions struct {
	Source string
	Target string // reference volume (-R)
	Output string // defaults to WarpImageMultiTransform.nii.gz in the working dir
	Interp string // defaults to InterpNearestNeighbor

	TransformStem      string // derives Affine.txt and [Inverse]Warp.nii.gz
	AffineTransform    string
	NonlinearTransform string

	Inverse    bool // apply the inverse transform
	AffineOnly bool // skip the nonlinear field
}

// Warp resamples a source volume into a target volume's grid through the
// transforms of a prior registration. A nonlinear transform that does not
// exist on disk degrades the call to affine-only, matching the historical
// wrapper behavior.
func (r *Runner) Warp(opts WarpOptions) (string, error) {
	affine := opts.AffineTransform
	nonlinear := opts.NonlinearTransform
	if opts.TransformStem != "" {
		affine = opts.TransformStem + "Affine.txt"
		if opts.Inverse {
			nonlinear = opts.TransformStem + "InverseWarp.nii.gz"
		} else {
			nonlinear = opts.TransformStem + "Warp.nii.gz"
		}
	} else if affine == "" && nonlinear == "" {
		return "", e.New(e.ErrTransformUnspecified,
			"Provide either a transform stem or affine and nonlinear transforms")
	}

	output := opts.Output
	if output == "" {
		output = defaultOutput("WarpImageMultiTransform.nii.gz")
	}
	interp := opts.Interp
	if interp == "" {
		interp = InterpNearestNeighbor
	}

	affineOnly := opts.AffineOnly
	if _, err := os.Stat(nonlinear); err != nil {
		affineOnly = true
	}

	args := []string{"3", opts.Source, output, "-R", opts.Target, interp}
	switch {
	case affineOnly && opts.Inverse:
		args = append(args, "-i", affine)
	case affineOnly:
		args = append(args, affine)
	case opts.Inverse:
		args = append(args, "-i", affine, nonlinear)
	default:
		args = append(args, nonlinear, affine)
	}

	if err := r.run("WarpImageMultiTransform", args); err != nil {
		return "", err
	}
	if err := requireOutputs(output); err != nil {
		return "", err
	}
	return output, nil
}
