package terminal

import "testing"

func TestStepProgressCounts(t *testing.T) {
	p := NewStepProgress(3, "pipeline")
	p.Step("register")
	p.Skip("warp")
	if p.current != 2 {
		t.Fatalf("expected current 2, got %d", p.current)
	}
	p.Finish()
	if p.current != p.total {
		t.Fatalf("expected current == total after Finish, got %d/%d", p.current, p.total)
	}
}
