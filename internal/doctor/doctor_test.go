package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeANTsInstall(t *testing.T, tools ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, tool := range tools {
		path := filepath.Join(dir, tool)
		if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestToolkitCheckHealthy(t *testing.T) {
	dir := fakeANTsInstall(t, "ImageMath", "ANTS", "WarpImageMultiTransform", "ThresholdImage")
	t.Setenv("ANTLER_ANTS_BIN", dir)

	res := (&ToolkitCheck{}).Run()
	if res.Status != StatusOK {
		t.Errorf("status = %v, message = %q", res.Status, res.Message)
	}
	if !strings.Contains(res.Message, dir) {
		t.Errorf("message should name the install dir: %q", res.Message)
	}
}

func TestToolkitCheckIncomplete(t *testing.T) {
	dir := fakeANTsInstall(t, "ImageMath")
	t.Setenv("ANTLER_ANTS_BIN", dir)
	// Hide any real install reachable through ANTSPATH or PATH.
	t.Setenv("ANTSPATH", "")
	t.Setenv("PATH", "")

	res := (&ToolkitCheck{}).Run()
	if res.Status == StatusOK {
		t.Errorf("incomplete install should not be OK: %q", res.Message)
	}
}

func TestPermissionsCheckAndFix(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	check := &PermissionsCheck{}
	if res := check.Run(); res.Status != StatusWarning {
		t.Errorf("missing state dir should warn, got %v", res.Status)
	}

	if err := check.Fix(); err != nil {
		t.Fatalf("Fix() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".antler"))
	if err != nil {
		t.Fatalf("state dir not created: %v", err)
	}
	if info.Mode().Perm() != 0o700 {
		t.Errorf("permissions = %v, want 0700", info.Mode().Perm())
	}

	if res := check.Run(); res.Status != StatusOK {
		t.Errorf("after fix, status = %v", res.Status)
	}
}

func TestProvenanceCheckEmptyStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res := (&ProvenanceCheck{}).Run()
	if res.Status != StatusOK {
		t.Errorf("empty store should be healthy, got %v: %q", res.Status, res.Message)
	}
}

func TestDiskSpaceCheckRuns(t *testing.T) {
	res := (&DiskSpaceCheck{}).Run()
	if res.Message == "" {
		t.Error("disk check should always report something")
	}
}
