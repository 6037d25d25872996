package commands

import (
	"fmt"

	"antler/internal/config"
	e "antler/pkg/errors"
)

// Register aligns a source volume to a target with the legacy ANTS binary.
// Usage:
//
//	antler register <source> <target> [--iterations NxNxN] [--stem STEM]
func Register(args []string) error {
	var positional []string
	iterations := ""
	stem := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			registerHelp()
			return nil
		case "--iterations":
			if i+1 < len(args) {
				iterations = args[i+1]
				i++
			}
		case "--stem":
			if i+1 < len(args) {
				stem = args[i+1]
				i++
			}
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		registerHelp()
		return e.New(e.ErrInputNotFound, "register needs a source and a target volume")
	}

	r, cfg := newRunner()
	if iterations == "" {
		iterations = configuredIterations(cfg)
	}
	res, err := r.Register(positional[0], positional[1], iterations, stem)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Transforms written:\n")
	fmt.Printf("   affine:    %s\n", res.AffineTransform)
	fmt.Printf("   warp:      %s\n", res.NonlinearTransform)
	fmt.Printf("   inverse:   %s\n", res.NonlinearInverseTransform)
	return nil
}

func configuredIterations(cfg *config.Config) string {
	return cfg.Iterations // empty means the built-in default
}

func registerHelp() {
	fmt.Println(`antler register - SyN registration of a source volume to a target (ANTS)

USAGE:
    antler register <source> <target> [OPTIONS]

OPTIONS:
    --iterations NxNxN   SyN iteration schedule (default: 30x99x11, "0" = affine only)
    --stem STEM          Output transform stem (default: ./<src>_to_<tgt>)

Produces <stem>Affine.txt, <stem>Warp.nii.gz and <stem>InverseWarp.nii.gz.

EXAMPLES:
    antler register t1.nii.gz MNI152.nii.gz
    antler register t1.nii.gz MNI152.nii.gz --iterations 0   # affine only`)
}
