package ants

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	e "antler/pkg/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWarpFromStem(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	stem := filepath.Join(tmp, "t1_to_mni")
	touch(t, stem+"Affine.txt")
	touch(t, stem+"Warp.nii.gz")

	r := NewRunner("", 0)
	out, err := r.Warp(WarpOptions{
		Source:        "labels.nii.gz",
		Target:        "mni.nii.gz",
		TransformStem: stem,
	})
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if filepath.Base(out) != "WarpImageMultiTransform.nii.gz" {
		t.Errorf("default output = %q", out)
	}

	want := []string{
		"WarpImageMultiTransform", "3", "labels.nii.gz", out,
		"-R", "mni.nii.gz", InterpNearestNeighbor,
		stem + "Warp.nii.gz", stem + "Affine.txt",
	}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}

func TestWarpInverseFromStem(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	stem := filepath.Join(tmp, "t1_to_mni")
	touch(t, stem+"Affine.txt")
	touch(t, stem+"InverseWarp.nii.gz")

	r := NewRunner("", 0)
	out, err := r.Warp(WarpOptions{
		Source:        "labels.nii.gz",
		Target:        "t1.nii.gz",
		TransformStem: stem,
		Inverse:       true,
	})
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}

	want := []string{
		"WarpImageMultiTransform", "3", "labels.nii.gz", out,
		"-R", "t1.nii.gz", InterpNearestNeighbor,
		"-i", stem + "Affine.txt", stem + "InverseWarp.nii.gz",
	}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}

func TestWarpFallsBackToAffineOnly(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	// Only the affine exists; the nonlinear field was never produced.
	stem := filepath.Join(tmp, "t1_to_mni")
	touch(t, stem+"Affine.txt")

	r := NewRunner("", 0)
	out, err := r.Warp(WarpOptions{
		Source:        "labels.nii.gz",
		Target:        "mni.nii.gz",
		TransformStem: stem,
	})
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}

	want := []string{
		"WarpImageMultiTransform", "3", "labels.nii.gz", out,
		"-R", "mni.nii.gz", InterpNearestNeighbor,
		stem + "Affine.txt",
	}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}

func TestWarpRequiresTransforms(t *testing.T) {
	chdir(t, t.TempDir())
	withFakeToolkit(t, &fakeToolkit{})

	r := NewRunner("", 0)
	_, err := r.Warp(WarpOptions{Source: "a.nii.gz", Target: "b.nii.gz"})
	if err == nil {
		t.Fatal("expected error without transforms")
	}
	if errCode(t, err) != e.ErrTransformUnspecified {
		t.Errorf("code = %v, want TRANSFORM_UNSPECIFIED", errCode(t, err))
	}
}

func TestWarpExplicitTransformsCustomInterp(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	affine := filepath.Join(tmp, "xfmAffine.txt")
	nonlinear := filepath.Join(tmp, "xfmWarp.nii.gz")
	touch(t, affine)
	touch(t, nonlinear)

	r := NewRunner("", 0)
	out := filepath.Join(tmp, "resampled.nii.gz")
	got, err := r.Warp(WarpOptions{
		Source:             "t1.nii.gz",
		Target:             "mni.nii.gz",
		Output:             out,
		Interp:             "--use-BSpline",
		AffineTransform:    affine,
		NonlinearTransform: nonlinear,
	})
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if got != out {
		t.Errorf("output = %q, want %q", got, out)
	}
	want := []string{
		"WarpImageMultiTransform", "3", "t1.nii.gz", out,
		"-R", "mni.nii.gz", "--use-BSpline",
		nonlinear, affine,
	}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}
