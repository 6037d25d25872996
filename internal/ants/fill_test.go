package ants

import (
	"path/filepath"
	"reflect"
	"testing"

	e "antler/pkg/errors"
)

// stubMapper records mapped surfaces and hands back canned volume paths.
type stubMapper struct {
	mapped []string
	out    map[string]string
}

func (s *stubMapper) ToVolume(surface, reference string) (string, error) {
	s.mapped = append(s.mapped, surface)
	return s.out[surface], nil
}

type stubMerger struct {
	base, overlay, output string
	ignore                []int
}

func (s *stubMerger) Overwrite(base, overlay, output string, ignore []int) (string, error) {
	s.base, s.overlay, s.output, s.ignore = base, overlay, output, ignore
	return output, nil
}

func TestFillWithSingleSurface(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	mapper := &stubMapper{out: map[string]string{"lh.labels.vtk": "lh_in_volume.nii.gz"}}
	r := NewRunner("", 0)
	out, err := r.FillWithSurfaceLabels(mapper, &stubMerger{}, FillOptions{
		VolumeMask:   "brain.nii.gz",
		SurfaceFiles: []string{"lh.labels.vtk"},
	})
	if err != nil {
		t.Fatalf("FillWithSurfaceLabels() error = %v", err)
	}
	if filepath.Base(out) != "PropagateLabelsThroughMask.nii.gz" {
		t.Errorf("default output = %q", out)
	}
	if len(mapper.mapped) != 1 {
		t.Fatalf("expected one surface mapped, got %v", mapper.mapped)
	}
	if fake.calls[0][5] != "lh_in_volume.nii.gz" {
		t.Errorf("propagation should seed from the mapped volume, got %v", fake.calls[0])
	}
}

func TestFillMergesTwoSurfaces(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	mapper := &stubMapper{out: map[string]string{
		"lh.labels.vtk": "lh_in_volume.nii.gz",
		"rh.labels.vtk": "rh_in_volume.nii.gz",
	}}
	merger := &stubMerger{}
	r := NewRunner("", 0)
	_, err := r.FillWithSurfaceLabels(mapper, merger, FillOptions{
		VolumeMask:   "brain.nii.gz",
		SurfaceFiles: []string{"lh.labels.vtk", "rh.labels.vtk"},
	})
	if err != nil {
		t.Fatalf("FillWithSurfaceLabels() error = %v", err)
	}

	if merger.base != "lh_in_volume.nii.gz" || merger.overlay != "rh_in_volume.nii.gz" {
		t.Errorf("merge inputs = %q over %q", merger.overlay, merger.base)
	}
	if filepath.Base(merger.output) != "surfaces.nii.gz" {
		t.Errorf("merged output = %q", merger.output)
	}
	if !reflect.DeepEqual(merger.ignore, []int{0}) {
		t.Errorf("background label should be ignored, got %v", merger.ignore)
	}
	if fake.calls[0][5] != merger.output {
		t.Errorf("propagation should seed from the merged volume, got %v", fake.calls[0])
	}
}

func TestFillRequiresSurfaces(t *testing.T) {
	chdir(t, t.TempDir())
	withFakeToolkit(t, &fakeToolkit{})

	r := NewRunner("", 0)
	_, err := r.FillWithSurfaceLabels(&stubMapper{}, &stubMerger{}, FillOptions{VolumeMask: "brain.nii.gz"})
	if err == nil {
		t.Fatal("expected error without surfaces")
	}
	if errCode(t, err) != e.ErrInputNotFound {
		t.Errorf("code = %v, want INPUT_NOT_FOUND", errCode(t, err))
	}
}
