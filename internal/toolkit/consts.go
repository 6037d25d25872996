package toolkit

// Common string constants to satisfy linting and avoid repetition.
const (
	strUnknown = "unknown"

	toolImageMath = "ImageMath"
	toolANTS      = "ANTS"
	toolWarp      = "WarpImageMultiTransform"
	toolThreshold = "ThresholdImage"

	envAntlerBin = "ANTLER_ANTS_BIN"
	envANTSPath  = "ANTSPATH"

	srcEnvAntler   = "env:ANTLER_ANTS_BIN"
	srcEnvANTSPath = "env:ANTSPATH"
	srcPath        = "PATH"
	srcWellKnown   = "well-known"
)

// RequiredTools lists the legacy ANTs binaries antler invokes.
var RequiredTools = []string{toolImageMath, toolANTS, toolWarp, toolThreshold}

// wellKnownDirs are probed when neither environment nor PATH locate ANTs.
var wellKnownDirs = []string{
	"/opt/ants/bin",
	"/opt/ANTs/bin",
	"/usr/lib/ants",
	"/usr/lib/ants/bin",
	"/usr/local/ants/bin",
}
