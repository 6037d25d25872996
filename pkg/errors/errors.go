// Package errors provides enhanced error types with context and recovery
// metadata for antler. These errors carry suggestions, a context map, and
// lightweight stack traces to improve user diagnostics and recovery.
package errors

import (
	"runtime"
	"strings"
)

// ErrorCode categorizes errors for handling
type ErrorCode string

const (
	// Toolkit errors
	ErrToolkitNotFound   ErrorCode = "TOOLKIT_NOT_FOUND"
	ErrToolkitIncomplete ErrorCode = "TOOLKIT_INCOMPLETE"

	// Invocation errors
	ErrInvocationFailed     ErrorCode = "INVOCATION_FAILED"
	ErrOutputMissing        ErrorCode = "OUTPUT_MISSING"
	ErrInputNotFound        ErrorCode = "INPUT_NOT_FOUND"
	ErrTransformUnspecified ErrorCode = "TRANSFORM_UNSPECIFIED"

	// Provenance errors
	ErrProvenanceCorrupted ErrorCode = "PROVENANCE_CORRUPTED"

	// Filesystem errors
	ErrDiskFull         ErrorCode = "DISK_FULL"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "INVALID_CONFIG"
	ErrInvalidPipeline ErrorCode = "INVALID_PIPELINE"

	// Unknown errors
	ErrUnknown ErrorCode = "UNKNOWN"
)

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// AntlerError is the base error type with rich context
type AntlerError struct {
	Code        ErrorCode         `json:"code"`
	Message     string            `json:"message"`
	Details     string            `json:"details,omitempty"`
	Suggestion  string            `json:"suggestion,omitempty"`
	Cause       error             `json:"-"`
	Context     map[string]string `json:"context,omitempty"`
	Recoverable bool              `json:"recoverable"`
	Stack       []StackFrame      `json:"stack,omitempty"`
}

// Error implements the error interface
func (e *AntlerError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}
	if e.Cause != nil {
		sb.WriteString("\nCaused by: ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause to errors.Is/As.
func (e *AntlerError) Unwrap() error { return e.Cause }

// WithSuggestion adds a suggestion for fixing the error
func (e *AntlerError) WithSuggestion(suggestion string) *AntlerError {
	e.Suggestion = suggestion
	return e
}

// WithContext adds contextual information
func (e *AntlerError) WithContext(key, value string) *AntlerError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps another error
func (e *AntlerError) WithCause(cause error) *AntlerError {
	e.Cause = cause
	return e
}

// WithDetails adds detailed information
func (e *AntlerError) WithDetails(details string) *AntlerError {
	e.Details = details
	return e
}

// New creates a new AntlerError
func New(code ErrorCode, message string) *AntlerError {
	err := &AntlerError{
		Code:        code,
		Message:     message,
		Recoverable: isRecoverable(code),
		Context:     make(map[string]string),
	}
	err.captureStack()
	err.Suggestion = getDefaultSuggestion(code)
	return err
}

// Wrap wraps a standard error with AntlerError
func Wrap(err error, code ErrorCode, message string) *AntlerError {
	if err == nil {
		return nil
	}
	if antErr, ok := err.(*AntlerError); ok {
		// Prepend message context
		if message != "" {
			antErr.Message = message + ": " + antErr.Message
		}
		return antErr
	}
	return New(code, message).WithCause(err)
}

// captureStack captures the current stack trace
func (e *AntlerError) captureStack() {
	const maxFrames = 10
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pc) // Skip runtime.Callers, captureStack, New/Wrap
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			if !more {
				break
			}
			continue
		}
		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
}

// isRecoverable determines if an error can be automatically recovered
func isRecoverable(code ErrorCode) bool {
	switch code {
	case ErrProvenanceCorrupted, ErrDiskFull:
		return true
	case ErrToolkitNotFound,
		ErrToolkitIncomplete,
		ErrInvocationFailed,
		ErrOutputMissing,
		ErrInputNotFound,
		ErrTransformUnspecified,
		ErrPermissionDenied,
		ErrInvalidConfig,
		ErrInvalidPipeline,
		ErrUnknown:
		return false
	default:
		return false
	}
}

// getDefaultSuggestion provides default fix suggestions
func getDefaultSuggestion(code ErrorCode) string {
	suggestions := map[ErrorCode]string{
		ErrToolkitNotFound:      "Install ANTs and set ANTSPATH, or run: antler setup",
		ErrToolkitIncomplete:    "Point ANTSPATH at a complete ANTs bin directory: antler doctor",
		ErrInvocationFailed:     "Re-run with --verbose to see the full command line and output",
		ErrOutputMissing:        "Check the tool's output above; the input volumes may be unreadable",
		ErrInputNotFound:        "Verify the input path and that the volume file exists",
		ErrTransformUnspecified: "Pass --stem, or both --affine and --nonlinear",
		ErrProvenanceCorrupted:  "Reset the record store: antler digest --reset",
		ErrDiskFull:             "Free disk space; provenance records live under ~/.antler",
		ErrPermissionDenied:     "Check file permissions on the output directory",
		ErrInvalidConfig:        "Fix or remove ~/.antler.json and re-run: antler setup",
		ErrInvalidPipeline:      "Validate the pipeline file: antler pipeline show <file>",
	}
	if s, ok := suggestions[code]; ok {
		return s
	}
	return "Run 'antler doctor' for diagnostics"
}
