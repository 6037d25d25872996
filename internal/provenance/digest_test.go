package provenance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileDigestDeterministic(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "t1.nii.gz", "volume bytes")

	d := NewDigester()
	h1, err := d.File(p)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	h2, err := d.File(p)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if h1 != h2 {
		t.Error("digest should be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("expected 256-bit hex digest, got %d chars", len(h1))
	}
}

func TestAlgorithmsDiffer(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "t1.nii.gz", "volume bytes")

	b3, err := NewDigesterWithAlgorithm(Blake3).File(p)
	if err != nil {
		t.Fatal(err)
	}
	sha, err := NewDigesterWithAlgorithm(SHA256).File(p)
	if err != nil {
		t.Fatal(err)
	}
	if b3 == sha {
		t.Error("blake3 and sha256 should disagree")
	}
}

func TestParseAlgorithm(t *testing.T) {
	if a, err := ParseAlgorithm(""); err != nil || a != Blake3 {
		t.Errorf("empty should default to blake3, got %v %v", a, err)
	}
	if a, err := ParseAlgorithm("sha256"); err != nil || a != SHA256 {
		t.Errorf("sha256 parse = %v %v", a, err)
	}
	if _, err := ParseAlgorithm("md5"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}

func TestDirectoryDigestIgnoresAndChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mri/t1.nii.gz", "t1 data")
	writeFile(t, dir, "labels/dkt.nii.gz", "label data")
	writeFile(t, dir, "run.log", "noise")

	d := NewDigester()
	res1, err := d.Directory(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Directory() error = %v", err)
	}
	if len(res1.Files) != 2 {
		t.Fatalf("expected 2 files after ignores, got %d: %+v", len(res1.Files), res1.Files)
	}

	// Log churn must not move the digest.
	writeFile(t, dir, "run.log", "different noise")
	res2, err := d.Directory(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res1.Digest != res2.Digest {
		t.Error("ignored file change should not affect the digest")
	}

	// Volume churn must.
	writeFile(t, dir, "mri/t1.nii.gz", "different t1 data")
	res3, err := d.Directory(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res1.Digest == res3.Digest {
		t.Error("volume change should move the digest")
	}
}

func TestFilesParallelMatchesSingle(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.nii.gz", "aaa"),
		writeFile(t, dir, "b.nii.gz", "bbb"),
		writeFile(t, dir, "c.nii.gz", "ccc"),
	}

	d := NewDigester()
	got, err := d.Files(context.Background(), paths)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	for _, p := range paths {
		want, err := d.File(p)
		if err != nil {
			t.Fatal(err)
		}
		if got[p] != want {
			t.Errorf("parallel digest mismatch for %s", p)
		}
	}
}

func TestFilesMissingInput(t *testing.T) {
	d := NewDigester()
	if _, err := d.Files(context.Background(), []string{"/no/such/volume.nii.gz"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
