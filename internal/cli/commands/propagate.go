package commands

import (
	"fmt"
	"strconv"

	"antler/internal/ants"
	e "antler/pkg/errors"
)

// Propagate fills a mask with seed labels (ImageMath
// PropagateLabelsThroughMask).
// Usage:
//
//	antler propagate <mask> <labels> [--mask-index N] [--no-binarize] [--out FILE]
func Propagate(args []string) error {
	var positional []string
	opts := ants.PropagateOptions{Binarize: true}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			propagateHelp()
			return nil
		case "--mask-index":
			if i+1 < len(args) {
				idx, err := strconv.Atoi(args[i+1])
				if err != nil {
					return e.New(e.ErrInvalidConfig,
						fmt.Sprintf("--mask-index wants an integer, got %q", args[i+1]))
				}
				opts.MaskIndex = idx
				i++
			}
		case "--no-binarize":
			opts.Binarize = false
		case "--out":
			if i+1 < len(args) {
				opts.OutputFile = args[i+1]
				i++
			}
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		propagateHelp()
		return e.New(e.ErrInputNotFound, "propagate needs a mask volume and a label volume")
	}
	opts.MaskVolume = positional[0]
	opts.LabelVolume = positional[1]

	r, _ := newRunner()
	out, err := r.PropagateLabels(opts)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s\n", out)
	return nil
}

func propagateHelp() {
	fmt.Println(`antler propagate - Fill a mask with seed labels (PropagateLabelsThroughMask)

USAGE:
    antler propagate <mask> <labels> [OPTIONS]

OPTIONS:
    --mask-index N   Restrict the mask to voxels with this value
    --no-binarize    Use the mask as-is instead of binarizing it first
    --out FILE       Output volume (default: ./PropagateLabelsThroughMask.nii.gz)

EXAMPLES:
    antler propagate brainmask.nii.gz labels.nii.gz
    antler propagate segmentation.nii.gz labels.nii.gz --mask-index 2`)
}
