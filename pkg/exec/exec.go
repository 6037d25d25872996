package exec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Commander provides an interface for command execution that can be mocked in tests.
// This enables dependency injection and makes code more testable.
type Commander interface {
	Command(name string, args ...string) *exec.Cmd
}

// DefaultCommander implements Commander using the standard exec.Command.
type DefaultCommander struct{}

// Command creates a new exec.Cmd using the standard library exec.Command.
func (DefaultCommander) Command(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// Global instance that can be overridden in tests
var Default Commander = DefaultCommander{}

// Command is a convenience function that delegates to the global Commander instance.
// Tests can override Default to provide mock implementations.
func Command(name string, args ...string) *exec.Cmd {
	return Default.Command(name, args...)
}

// Options control how Run executes a command.
type Options struct {
	Dir     string
	Env     []string // appended to the inherited environment
	Capture bool     // capture stdout instead of streaming it
	Quiet   bool     // discard child stdout (stderr is always kept for errors)
}

// Result describes a completed invocation.
type Result struct {
	Stdout   string
	Duration time.Duration
}

// stderrTailLines bounds how much child stderr is carried into error messages.
const stderrTailLines = 20

// Run executes name with args synchronously and waits for completion.
// On failure the returned error includes the tail of the child's stderr.
func Run(name string, args []string, opts Options) (Result, error) {
	cmd := Command(name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	switch {
	case opts.Capture:
		cmd.Stdout = &stdout
	case opts.Quiet:
		cmd.Stdout = io.Discard
	default:
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	if opts.Capture || opts.Quiet {
		cmd.Stderr = &stderr
	}

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   strings.TrimSpace(stdout.String()),
		Duration: time.Since(start),
	}
	if err != nil {
		if tail := tailLines(stderr.String(), stderrTailLines); tail != "" {
			return res, fmt.Errorf("%s: %w\n%s", name, err, tail)
		}
		return res, fmt.Errorf("%s: %w", name, err)
	}
	return res, nil
}

// tailLines returns the last n non-empty lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
