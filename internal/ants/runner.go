// Package ants builds command lines for the legacy ANTs binaries, invokes
// them synchronously, and verifies that the expected output files appeared
// on disk. There is no image processing here; the binaries are opaque.
package ants

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	xexec "antler/pkg/exec"
	e "antler/pkg/errors"
	"antler/pkg/logger"
)

// Invocation describes one completed toolkit invocation.
type Invocation struct {
	Tool     string
	Args     []string
	Duration time.Duration
}

// Runner invokes legacy ANTs binaries from a resolved bin directory.
// An empty Dir resolves bare tool names through PATH.
type Runner struct {
	Dir     string
	Threads int // ITK thread count passed to invocations; 0 leaves it unset

	// Observer, if set, receives each completed invocation. The pipeline
	// layer uses this to record provenance.
	Observer func(Invocation)
}

// NewRunner creates a runner for the given ANTs bin directory.
func NewRunner(dir string, threads int) *Runner {
	return &Runner{Dir: dir, Threads: threads}
}

// binPath resolves a tool name against the runner's bin directory.
func (r *Runner) binPath(tool string) string {
	if r.Dir == "" {
		return tool
	}
	p := filepath.Join(r.Dir, tool)
	if runtime.GOOS == "windows" {
		p += ".exe"
	}
	return p
}

// run executes one toolkit binary and waits for it.
func (r *Runner) run(tool string, args []string) error {
	bin := r.binPath(tool)
	var env []string
	if r.Threads > 0 {
		env = append(env, fmt.Sprintf("ITK_GLOBAL_DEFAULT_NUMBER_OF_THREADS=%d", r.Threads))
	}

	logger.Verbosef("exec: %s %s", bin, xexec.JoinArgs(args))
	res, err := xexec.Run(bin, args, xexec.Options{Env: env, Quiet: true})
	if err != nil {
		if _, statErr := os.Stat(bin); r.Dir != "" && statErr != nil {
			return e.New(e.ErrToolkitNotFound, fmt.Sprintf("%s not found", tool)).
				WithContext("tool", tool).
				WithContext("dir", r.Dir).
				WithCause(err)
		}
		return e.Wrap(err, e.ErrInvocationFailed, fmt.Sprintf("%s failed", tool)).
			WithContext("tool", tool).
			WithContext("command", xexec.JoinArgs(append([]string{bin}, args...)))
	}
	logger.Debugf("%s completed in %v", tool, res.Duration)

	if r.Observer != nil {
		r.Observer(Invocation{Tool: tool, Args: args, Duration: res.Duration})
	}
	return nil
}

// requireOutputs verifies each expected output file exists on disk.
func requireOutputs(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return e.New(e.ErrOutputMissing, fmt.Sprintf("%s not found", p)).
				WithContext("path", p)
		}
	}
	return nil
}
