package ants

import "strconv"

// Threshold maps voxels of input inside [lo, hi] to inside and all others
// to outside via the ThresholdImage binary, writing the result to output.
func (r *Runner) Threshold(input, output string, lo, hi, inside, outside float64) (string, error) {
	if output == "" {
		output = defaultOutput("ThresholdImage.nii.gz")
	}

	args := []string{
		"3", input, output,
		formatValue(lo), formatValue(hi),
		formatValue(inside), formatValue(outside),
	}
	if err := r.run("ThresholdImage", args); err != nil {
		return "", err
	}
	if err := requireOutputs(output); err != nil {
		return "", err
	}
	return output, nil
}

// Binarize zeroes background voxels in [0, 1] and sets everything brighter
// to 1, the historical recipe for turning an intensity volume into a mask.
func (r *Runner) Binarize(input, output string) (string, error) {
	return r.Threshold(input, output, 0, 1, 0, 1)
}

// SelectLabel keeps only voxels equal to index, producing a binary mask.
func (r *Runner) SelectLabel(input, output string, index int) (string, error) {
	v := float64(index)
	return r.Threshold(input, output, v, v, 1, 0)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
