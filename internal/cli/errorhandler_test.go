package cli

import (
	"strings"
	"testing"

	e "antler/pkg/errors"
)

func TestErrorHandler_DisplayAntlerError(t *testing.T) {
	h := NewErrorHandler(true, false) // verbose
	err := e.New(e.ErrOutputMissing, "Registration output missing").
		WithDetails("ANTS exited 0 but wrote no transforms").
		WithSuggestion("Run antler doctor").
		WithContext("path", "t1_to_MNI152Affine.txt")

	out := captureStdout(t, func() {
		h.displayAntlerError(err)
	})
	if !strings.Contains(out, "Registration output missing") || !strings.Contains(out, "wrote no transforms") {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "t1_to_MNI152Affine.txt") || !strings.Contains(out, "antler doctor") {
		t.Fatalf("missing context/suggestion: %s", out)
	}
}

func TestErrorHandler_NilIsNoop(t *testing.T) {
	h := NewErrorHandler(false, false)
	// Handle(nil) must not exit or print.
	out := captureStdout(t, func() {
		h.Handle(nil)
	})
	if out != "" {
		t.Errorf("nil error produced output: %q", out)
	}
}
