package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ANTsBin != "" || cfg.Threads != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := &Config{
		ANTsBin:       "/opt/ants/bin",
		Iterations:    "30x99x11",
		Interpolation: "--use-NN",
		Threads:       4,
	}
	if err := Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.ANTsBin != in.ANTsBin || out.Iterations != in.Iterations || out.Threads != in.Threads {
		t.Errorf("roundtrip mismatch: %+v", out)
	}
}

func TestLoadCorruptFileNonFatal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, ".antler.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ANTsBin != "" {
		t.Errorf("corrupt config should load empty, got %+v", cfg)
	}
}
