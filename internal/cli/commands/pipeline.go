package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antler/internal/pipeline"
	"antler/internal/provenance"
	e "antler/pkg/errors"
)

// Pipeline runs, watches or inspects a pipeline file.
// Usage:
//
//	antler pipeline run <file> [--resume]
//	antler pipeline watch <file>
//	antler pipeline show <file>
func Pipeline(args []string) error {
	if len(args) == 0 {
		pipelineHelp()
		return nil
	}

	sub := args[0]
	rest := args[1:]
	switch sub {
	case "-h", "--help", "help":
		pipelineHelp()
		return nil
	case "run":
		return pipelineRun(rest)
	case "watch":
		return pipelineWatch(rest)
	case "show":
		return pipelineShow(rest)
	default:
		pipelineHelp()
		return e.New(e.ErrInvalidPipeline, fmt.Sprintf("unknown pipeline subcommand %q", sub))
	}
}

func pipelineRun(args []string) error {
	path := ""
	resume := false
	for _, a := range args {
		switch a {
		case "--resume":
			resume = true
		default:
			path = a
		}
	}
	if path == "" {
		pipelineHelp()
		return e.New(e.ErrInvalidPipeline, "pipeline run needs a pipeline file")
	}

	f, err := pipeline.Load(path)
	if err != nil {
		return err
	}

	x, err := newExecutor(resume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := x.Run(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %d step(s) executed, %d skipped in %v\n", res.Executed, res.Skipped, res.Duration.Round(time.Millisecond))
	return nil
}

func pipelineWatch(args []string) error {
	if len(args) != 1 {
		pipelineHelp()
		return e.New(e.ErrInvalidPipeline, "pipeline watch needs a pipeline file")
	}

	x, err := newExecutor(true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("👀 Watching %s (Ctrl-C to stop)\n", args[0])
	w := &pipeline.Watcher{Executor: x}
	if err := w.Watch(ctx, args[0]); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func pipelineShow(args []string) error {
	if len(args) != 1 {
		pipelineHelp()
		return e.New(e.ErrInvalidPipeline, "pipeline show needs a pipeline file")
	}
	f, err := pipeline.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Pipeline: %s (%d steps)\n", args[0], len(f.Steps))
	for i := range f.Steps {
		s := &f.Steps[i]
		fmt.Printf("  %d. %-20s %s\n", i+1, s.Name, s.Op)
		for _, in := range s.Inputs() {
			fmt.Printf("       in:  %s\n", in)
		}
		if s.Output != "" {
			fmt.Printf("       out: %s\n", s.Output)
		}
	}
	return nil
}

// newExecutor builds a pipeline executor around a resolved runner and the
// default provenance store.
func newExecutor(resume bool) (*pipeline.Executor, error) {
	r, cfg := newRunner()
	x := pipeline.NewExecutor(r)
	x.Mapper = newMapper(cfg)
	x.Merger = newMerger(cfg)
	x.Resume = resume

	store, err := provenance.NewStore("")
	if err == nil {
		x.Store = store
	} else if resume {
		return nil, e.Wrap(err, e.ErrProvenanceCorrupted, "Cannot open the record store for resume")
	}

	if alg, err := provenance.ParseAlgorithm(cfg.DigestAlgorithm); err == nil {
		x.Digester = provenance.NewDigesterWithAlgorithm(alg)
	}
	return x, nil
}

func pipelineHelp() {
	fmt.Println(`antler pipeline - Run ordered toolkit operations from a YAML file

USAGE:
    antler pipeline run <file> [--resume]
    antler pipeline watch <file>
    antler pipeline show <file>

SUBCOMMANDS:
    run      Execute every step in order; --resume skips steps whose inputs
             are unchanged and whose outputs still exist
    watch    Re-run the pipeline when the file or any step input changes
    show     Validate the file and print the step plan

A pipeline file holds a vars: block for ${name} interpolation and a steps:
list, each step one of: math, register, warp, threshold, propagate, fill.

EXAMPLE:
    vars:
      subject: /data/sub-01
    steps:
      - name: to-atlas
        op: register
        source: ${subject}/t1.nii.gz
        target: /atlas/MNI152.nii.gz
      - name: labels-to-subject
        op: warp
        source: /atlas/dkt.nii.gz
        target: ${subject}/t1.nii.gz
        stem: ${subject}/t1_to_MNI152
        inverse: true`)
}
