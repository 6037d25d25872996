package terminal

import (
	"os"
	"testing"
)

func TestColorizeRespectsNoColor(t *testing.T) {
	old := os.Getenv("NO_COLOR")
	defer os.Setenv("NO_COLOR", old)
	os.Setenv("NO_COLOR", "1")
	if got := Colorize(Red, "hello"); got != "hello" {
		t.Fatalf("expected plain text with NO_COLOR set, got %q", got)
	}
}

func TestHelpersReturnText(t *testing.T) {
	// Under go test stdout is not a terminal, so helpers pass text through.
	for _, got := range []string{Success("x"), Error("x"), Warning("x"), Info("x"), BoldText("x")} {
		if got != "x" {
			t.Fatalf("expected passthrough when not a terminal, got %q", got)
		}
	}
}
