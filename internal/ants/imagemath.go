package ants

// ImageMath performs a voxelwise operation on two volumes via the ANTs
// ImageMath binary. Supported operators include:
//
//	m         : multiply (vm for vector multiply)
//	+         : add (v+ for vector add)
//	-         : subtract (v- for vector subtract)
//	/         : divide
//	^         : power
//	exp       : exp(imagevalue*value)
//	addtozero : add image-b only where image-a is zero
//	overadd   : replace image-a voxel where image-b voxel is non-zero
//	abs       : absolute value
//	total     : sum of values in image1 or image1*image2
//	mean      : average of values in image1 or image1*image2
//	vtotal    : volumetrically weighted sum
//	Decision  : 1/(1+exp(-1.0*(pix1-0.25)/pix2))
//	Neg       : image negative
//
// An empty outputFile defaults to ImageMath.nii.gz in the working
// directory. Returns the output path once it exists on disk.
func (r *Runner) ImageMath(volume1, volume2, operator, outputFile string) (string, error) {
	if operator == "" {
		operator = "m"
	}
	if outputFile == "" {
		outputFile = defaultOutput("ImageMath.nii.gz")
	}

	args := []string{"3", outputFile, operator, volume1, volume2}
	if err := r.run("ImageMath", args); err != nil {
		return "", err
	}
	if err := requireOutputs(outputFile); err != nil {
		return "", err
	}
	return outputFile, nil
}
