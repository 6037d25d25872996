package pipeline

import (
	"context"
	"fmt"
	"time"

	"antler/internal/ants"
	"antler/internal/provenance"
	"antler/pkg/logger"
	"antler/pkg/terminal"
)

// Executor runs pipeline steps through a toolkit runner and records
// provenance for each completed step.
type Executor struct {
	Runner *ants.Runner
	Mapper ants.SurfaceMapper
	Merger ants.LabelMerger

	Store    *provenance.Store // nil disables recording and resume
	Digester *provenance.Digester

	// Resume skips steps whose provenance record is still valid.
	Resume bool
}

// NewExecutor wires an executor around a runner with a default digester.
func NewExecutor(runner *ants.Runner) *Executor {
	return &Executor{
		Runner:   runner,
		Digester: provenance.NewDigester(),
	}
}

// Result summarizes one pipeline run.
type Result struct {
	Executed int
	Skipped  int
	Duration time.Duration
}

// Run executes the pipeline's steps in order. The first failing step
// aborts the run; earlier provenance records survive, so a fixed re-run
// with resume picks up where it stopped.
func (x *Executor) Run(ctx context.Context, f *File) (*Result, error) {
	start := time.Now()
	progress := terminal.NewStepProgress(len(f.Steps), f.displayName())

	res := &Result{}
	for i := range f.Steps {
		step := &f.Steps[i]
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if x.Resume && x.upToDate(step) {
			logger.Infof("Skipping %s (up to date)", step.Name)
			progress.Skip(step.Name)
			res.Skipped++
			continue
		}

		progress.Step(step.Name)
		logger.StartTimer(step.Name)
		outputs, err := x.execute(step)
		logger.EndTimer(step.Name)
		if err != nil {
			return res, err
		}
		res.Executed++

		if err := x.record(ctx, step, outputs); err != nil {
			// Provenance failures degrade resume, not the run.
			logger.Warnf("Could not record provenance for %s: %v", step.Name, err)
		}
	}

	progress.Finish()
	res.Duration = time.Since(start)
	return res, nil
}

func (f *File) displayName() string {
	if f.Name != "" {
		return f.Name
	}
	return "pipeline"
}

// execute dispatches one step to its runner operation and returns the
// output files it produced.
func (x *Executor) execute(step *Step) ([]string, error) {
	switch step.Op {
	case OpMath:
		out, err := x.Runner.ImageMath(step.Volume1, step.Volume2, step.Operator, step.Output)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil

	case OpRegister:
		reg, err := x.Runner.Register(step.Source, step.Target, step.Iterations, step.Stem)
		if err != nil {
			return nil, err
		}
		return []string{reg.AffineTransform, reg.NonlinearTransform, reg.NonlinearInverseTransform}, nil

	case OpWarp:
		out, err := x.Runner.Warp(ants.WarpOptions{
			Source:             step.Source,
			Target:             step.Target,
			Output:             step.Output,
			Interp:             step.Interp,
			TransformStem:      step.Stem,
			AffineTransform:    step.Affine,
			NonlinearTransform: step.Nonlinear,
			Inverse:            step.Inverse,
			AffineOnly:         step.AffineOnly,
		})
		if err != nil {
			return nil, err
		}
		return []string{out}, nil

	case OpThreshold:
		out, err := x.Runner.Threshold(step.Input, step.Output, step.Lo, step.Hi, step.Inside, step.Outside)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil

	case OpPropagate:
		out, err := x.Runner.PropagateLabels(ants.PropagateOptions{
			MaskVolume:  step.Mask,
			LabelVolume: step.Labels,
			MaskIndex:   step.MaskIndex,
			OutputFile:  step.Output,
			Binarize:    step.binarize(),
		})
		if err != nil {
			return nil, err
		}
		return []string{out}, nil

	case OpFill:
		out, err := x.Runner.FillWithSurfaceLabels(x.Mapper, x.Merger, ants.FillOptions{
			VolumeMask:   step.Mask,
			SurfaceFiles: step.Surfaces,
			MaskIndex:    step.MaskIndex,
			OutputFile:   step.Output,
			Binarize:     step.binarize(),
		})
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	// Validate rejects unknown ops before execution reaches here.
	return nil, fmt.Errorf("unhandled operation %q", step.Op)
}

func (x *Executor) upToDate(step *Step) bool {
	if x.Store == nil {
		return false
	}
	return x.Store.UpToDate("pipeline", step.identity(), x.Digester)
}

func (x *Executor) record(ctx context.Context, step *Step, outputs []string) error {
	if x.Store == nil {
		return nil
	}

	inputs, err := x.Digester.Files(ctx, step.Inputs())
	if err != nil {
		return err
	}
	outs, err := x.Digester.Files(ctx, outputs)
	if err != nil {
		return err
	}

	return x.Store.Save(&provenance.Record{
		Tool:      "pipeline",
		Args:      step.identity(),
		Inputs:    inputs,
		Outputs:   outs,
		Algorithm: x.Digester.Algorithm().String(),
	})
}
