package commands

import (
	"fmt"
	"strconv"

	"antler/internal/ants"
	e "antler/pkg/errors"
)

// Fill maps labeled surface meshes into a volume mask and propagates
// their labels through it.
// Usage:
//
//	antler fill <mask> <surface> [surface2] [--mask-index N] [--binarize] [--out FILE]
func Fill(args []string) error {
	var positional []string
	opts := ants.FillOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fillHelp()
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
		case "--binarize":
			opts.Binarize = true
		case "--out":
			if i+1 < len(args) {
				opts.OutputFile = args[i+1]
				i++
			}
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) < 2 || len(positional) > 3 {
		fillHelp()
		return e.New(e.ErrInputNotFound, "fill needs a mask volume and one or two surface files")
	}
	opts.VolumeMask = positional[0]
	opts.SurfaceFiles = positional[1:]

	r, cfg := newRunner()
	out, err := r.FillWithSurfaceLabels(newMapper(cfg), newMerger(cfg), opts)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s\n", out)
	return nil
}

func fillHelp() {
	fmt.Println(`antler fill - Fill a volume mask with labels from surface meshes

USAGE:
    antler fill <mask> <surface> [surface2] [OPTIONS]

OPTIONS:
    --mask-index N   Restrict the mask to voxels with this value
    --binarize       Binarize the mask before propagation
    --out FILE       Output volume (default: ./PropagateLabelsThroughMask.nii.gz)

Each surface is rendered into the mask's voxel grid; a second surface is
overwritten onto the first (label 0 ignored) before propagation. Helper
tools are configurable via mapper_tool/merger_tool in ~/.antler.json.

EXAMPLES:
    antler fill ribbon.nii.gz lh.labels.vtk rh.labels.vtk --out filled.nii.gz`)
}
