package commands

import (
	"fmt"

	"antler/internal/ants"
	e "antler/pkg/errors"
)

// Warp resamples a source volume into a target's grid through the
// transforms of a prior registration.
// Usage:
//
//	antler warp <source> <target> --stem STEM [OPTIONS]
//	antler warp <source> <target> --affine A.txt [--nonlinear W.nii.gz] [OPTIONS]
func Warp(args []string) error {
	var positional []string
	opts := ants.WarpOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			warpHelp()
			return nil
		case "--stem":
			if i+1 < len(args) {
				opts.TransformStem = args[i+1]
				i++
			}
		case "--affine":
			if i+1 < len(args) {
				opts.AffineTransform = args[i+1]
				i++
			}
		case "--nonlinear":
			if i+1 < len(args) {
				opts.NonlinearTransform = args[i+1]
				i++
			}
		case "--interp":
			if i+1 < len(args) {
				opts.Interp = args[i+1]
				i++
			}
		case "--out":
			if i+1 < len(args) {
				opts.Output = args[i+1]
				i++
			}
		case "--inverse":
			opts.Inverse = true
		case "--affine-only":
			opts.AffineOnly = true
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		warpHelp()
		return e.New(e.ErrInputNotFound, "warp needs a source and a target volume")
	}
	opts.Source = positional[0]
	opts.Target = positional[1]

	r, cfg := newRunner()
	if opts.Interp == "" {
		opts.Interp = cfg.Interpolation
	}
	out, err := r.Warp(opts)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s\n", out)
	return nil
}

func warpHelp() {
	fmt.Println(`antler warp - Resample a volume through registration transforms (WarpImageMultiTransform)

USAGE:
    antler warp <source> <target> --stem STEM [OPTIONS]
    antler warp <source> <target> --affine A.txt [--nonlinear W.nii.gz] [OPTIONS]

OPTIONS:
    --stem STEM         Transform stem from a prior 'antler register'
    --affine FILE       Explicit affine transform
    --nonlinear FILE    Explicit nonlinear warp field
    --interp FLAG       Interpolation flag (default: --use-NN, right for labels)
    --out FILE          Output volume (default: ./WarpImageMultiTransform.nii.gz)
    --inverse           Apply the inverse transform
    --affine-only       Skip the nonlinear field

A nonlinear transform missing on disk degrades the warp to affine-only.

EXAMPLES:
    antler warp dkt.nii.gz t1.nii.gz --stem t1_to_MNI152 --inverse
    antler warp t1.nii.gz MNI152.nii.gz --stem t1_to_MNI152 --out warped.nii.gz`)
}
