package commands

import (
	"fmt"

	e "antler/pkg/errors"
)

// Math performs a voxelwise ImageMath operation on two volumes.
// Usage:
//
//	antler math <volume1> <volume2> [--op OPERATOR] [--out FILE]
func Math(args []string) error {
	var positional []string
	operator := ""
	output := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			mathHelp()
			return nil
		case "--op":
			if i+1 < len(args) {
				operator = args[i+1]
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

	if len(positional) != 2 {
		mathHelp()
		return e.New(e.ErrInputNotFound, "math needs exactly two input volumes")
	}

	r, _ := newRunner()
	out, err := r.ImageMath(positional[0], positional[1], operator, output)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s\n", out)
	return nil
}

func mathHelp() {
	fmt.Println(`antler math - Voxelwise operation on two volumes (ImageMath)

USAGE:
    antler math <volume1> <volume2> [OPTIONS]

OPTIONS:
    --op OPERATOR    ImageMath operator (default: m)
                     m + - / ^ exp addtozero overadd abs total mean
                     vtotal Decision Neg (v-prefixed forms for vectors)
    --out FILE       Output volume (default: ./ImageMath.nii.gz)

EXAMPLES:
    antler math t1.nii.gz mask.nii.gz                 # multiply
    antler math a.nii.gz b.nii.gz --op + --out sum.nii.gz`)
}
