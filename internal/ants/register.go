package ants

import (
	"fmt"
	"path/filepath"
)

// DefaultIterations is the SyN iteration schedule used when none is given.
// "0" requests an affine-only registration.
const DefaultIterations = "30x99x11"

// RegistrationResult holds the transform files produced by Register.
type RegistrationResult struct {
	AffineTransform           string // <stem>Affine.txt
	NonlinearTransform        string // <stem>Warp.nii.gz
	NonlinearInverseTransform string // <stem>InverseWarp.nii.gz
	OutputStem                string
}

// Register aligns a source volume to a target volume with the legacy ANTS
// binary using SyN with a cross-correlation metric. An empty outputStem
// derives <src>_to_<tgt> in the working directory. All three transform
// files must exist afterwards.
func (r *Runner) Register(source, target, iterations, outputStem string) (*RegistrationResult, error) {
	if iterations == "" {
		iterations = DefaultIterations
	}
	if outputStem == "" {
		outputStem = filepath.Join(workingDir(), stemBase(source)+"_to_"+stemBase(target))
	}

	args := []string{
		"3",
		"-m", fmt.Sprintf("CC[%s,%s,1,2]", target, source),
		"-r", "Gauss[2,0]",
		"-t", "SyN[0.5]",
		"-i", iterations,
		"-o", outputStem,
		"--use-Histogram-Matching",
		"--number-of-affine-iterations", "10000x10000x10000x10000x10000",
	}
	if err := r.run("ANTS", args); err != nil {
		return nil, err
	}

	res := &RegistrationResult{
		AffineTransform:           outputStem + "Affine.txt",
		NonlinearTransform:        outputStem + "Warp.nii.gz",
		NonlinearInverseTransform: outputStem + "InverseWarp.nii.gz",
		OutputStem:                outputStem,
	}
	if err := requireOutputs(res.AffineTransform, res.NonlinearTransform, res.NonlinearInverseTransform); err != nil {
		return nil, err
	}
	return res, nil
}
