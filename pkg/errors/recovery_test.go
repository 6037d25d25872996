package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecovererResetsProvenanceStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "provenance")
	if err := os.MkdirAll(store, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(ErrProvenanceCorrupted, "record store unreadable").WithContext("store", store)
	r := NewRecoverer(false)
	if err := r.Recover(e); err != nil {
		t.Fatalf("expected recovery to succeed, got %v", err)
	}

	entries, err := os.ReadDir(store)
	if err != nil {
		t.Fatalf("store should be recreated: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("store should be empty after reset, found %d entries", len(entries))
	}
}

func TestRecovererSkipsUnrecoverable(t *testing.T) {
	e := New(ErrOutputMissing, "output not found")
	r := NewRecoverer(false)
	if err := r.Recover(e); err == nil {
		t.Fatal("unrecoverable error should be returned unchanged")
	}
}
