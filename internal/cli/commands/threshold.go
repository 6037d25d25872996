package commands

import (
	"fmt"
	"strconv"

	e "antler/pkg/errors"
)

// Threshold maps voxels inside a value range to one value and everything
// else to another (ThresholdImage).
// Usage:
//
//	antler threshold <input> [--lo N] [--hi N] [--inside N] [--outside N] [--out FILE]
func Threshold(args []string) error {
	var positional []string
	output := ""
	lo, hi, inside, outside := 0.0, 1.0, 0.0, 1.0
	var parseErr error

	floatFlag := func(name, val string) float64 {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil && parseErr == nil {
			parseErr = e.New(e.ErrInvalidConfig,
				fmt.Sprintf("%s wants a number, got %q", name, val))
		}
		return f
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			thresholdHelp()
			return nil
		case "--lo":
			if i+1 < len(args) {
				lo = floatFlag("--lo", args[i+1])
				i++
			}
		case "--hi":
			if i+1 < len(args) {
				hi = floatFlag("--hi", args[i+1])
				i++
			}
		case "--inside":
			if i+1 < len(args) {
				inside = floatFlag("--inside", args[i+1])
				i++
			}
		case "--outside":
			if i+1 < len(args) {
				outside = floatFlag("--outside", args[i+1])
				i++
			}
		case "--out":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		default:
			positional = append(positional, args[i])
		}
	}
	if parseErr != nil {
		return parseErr
	}

	if len(positional) != 1 {
		thresholdHelp()
		return e.New(e.ErrInputNotFound, "threshold needs exactly one input volume")
	}

	r, _ := newRunner()
	out, err := r.Threshold(positional[0], output, lo, hi, inside, outside)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s\n", out)
	return nil
}

func thresholdHelp() {
	fmt.Println(`antler threshold - Map a value range to inside/outside values (ThresholdImage)

USAGE:
    antler threshold <input> [OPTIONS]

OPTIONS:
    --lo N         Lower bound of the range (default: 0)
    --hi N         Upper bound of the range (default: 1)
    --inside N     Value for voxels inside [lo, hi] (default: 0)
    --outside N    Value for voxels outside (default: 1)
    --out FILE     Output volume (default: ./ThresholdImage.nii.gz)

The defaults binarize an intensity volume: background in [0,1] becomes 0,
everything brighter becomes 1.

EXAMPLES:
    antler threshold brain.nii.gz --out mask.nii.gz
    antler threshold labels.nii.gz --lo 17 --hi 17 --inside 1 --outside 0`)
}
