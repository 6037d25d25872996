// Package exec provides command execution wrappers and utilities for antler.
// This package handles synchronous invocation of external toolkit binaries,
// output capturing, and a test-friendly seam for stubbing subprocesses.
package exec
