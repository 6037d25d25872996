package cli

import (
	"antler/internal/cli/commands"
)

// Thin wrappers routing registry entries to the commands package.
type mathCmd struct{}

func (mathCmd) Name() string        { return "math" }
func (mathCmd) Description() string { return "Voxelwise operation on two volumes" }
func (mathCmd) Run(args []string) error {
	return commands.Math(args)
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "SyN registration of a source to a target" }
func (registerCmd) Run(args []string) error {
	return commands.Register(args)
}

type warpCmd struct{}

func (warpCmd) Name() string        { return "warp" }
func (warpCmd) Description() string { return "Resample a volume through registration transforms" }
func (warpCmd) Run(args []string) error {
	return commands.Warp(args)
}

type thresholdCmd struct{}

func (thresholdCmd) Name() string        { return "threshold" }
func (thresholdCmd) Description() string { return "Map a value range to inside/outside values" }
func (thresholdCmd) Run(args []string) error {
	return commands.Threshold(args)
}

type propagateCmd struct{}

func (propagateCmd) Name() string        { return "propagate" }
func (propagateCmd) Description() string { return "Fill a mask with seed labels" }
func (propagateCmd) Run(args []string) error {
	return commands.Propagate(args)
}

type fillCmd struct{}

func (fillCmd) Name() string        { return "fill" }
func (fillCmd) Description() string { return "Fill a mask with labels from surface meshes" }
func (fillCmd) Run(args []string) error {
	return commands.Fill(args)
}

type pipelineCmd struct{}

func (pipelineCmd) Name() string        { return "pipeline" }
func (pipelineCmd) Description() string { return "Run ordered operations from a YAML file" }
func (pipelineCmd) Run(args []string) error {
	return commands.Pipeline(args)
}

type digestCmd struct{}

func (digestCmd) Name() string        { return "digest" }
func (digestCmd) Description() string { return "Hash subject directories and manage provenance" }
func (digestCmd) Run(args []string) error {
	return commands.Digest(args)
}

type toolkitCmd struct{}

func (toolkitCmd) Name() string        { return "toolkit" }
func (toolkitCmd) Description() string { return "Show discovered ANTs installations" }
func (toolkitCmd) Run(args []string) error {
	return commands.Toolkit(args)
}

type doctorCmd struct{}

func (doctorCmd) Name() string        { return "doctor" }
func (doctorCmd) Description() string { return "System health check" }
func (doctorCmd) Run(args []string) error {
	return commands.Doctor(args)
}

type setupCmd struct{}

func (setupCmd) Name() string        { return "setup" }
func (setupCmd) Description() string { return "Choose the preferred ANTs installation" }
func (setupCmd) Run(args []string) error {
	return commands.Setup(args)
}

type completionCmd struct{}

func (completionCmd) Name() string        { return "completion" }
func (completionCmd) Description() string { return "Generate shell completion scripts" }
func (completionCmd) Run(args []string) error {
	return commands.Completion(args)
}

// Command factory functions
func NewMathCommand() Command       { return mathCmd{} }
func NewRegisterCommand() Command   { return registerCmd{} }
func NewWarpCommand() Command       { return warpCmd{} }
func NewThresholdCommand() Command  { return thresholdCmd{} }
func NewPropagateCommand() Command  { return propagateCmd{} }
func NewFillCommand() Command       { return fillCmd{} }
func NewPipelineCommand() Command   { return pipelineCmd{} }
func NewDigestCommand() Command     { return digestCmd{} }
func NewToolkitCommand() Command    { return toolkitCmd{} }
func NewDoctorCommand() Command     { return doctorCmd{} }
func NewSetupCommand() Command      { return setupCmd{} }
func NewCompletionCommand() Command { return completionCmd{} }
