package ants

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestThresholdArgs(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	r := NewRunner("", 0)
	out := filepath.Join(tmp, "mask.nii.gz")
	if _, err := r.Threshold("brain.nii.gz", out, 0, 1, 0, 1); err != nil {
		t.Fatalf("Threshold() error = %v", err)
	}

	want := []string{"ThresholdImage", "3", "brain.nii.gz", out, "0", "1", "0", "1"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}

func TestSelectLabelArgs(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	r := NewRunner("", 0)
	out := filepath.Join(tmp, "label7.nii.gz")
	if _, err := r.SelectLabel("labels.nii.gz", out, 7); err != nil {
		t.Fatalf("SelectLabel() error = %v", err)
	}

	want := []string{"ThresholdImage", "3", "labels.nii.gz", out, "7", "7", "1", "0"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls[0], want)
	}
}

func TestPropagateLabelsPlain(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	r := NewRunner("", 0)
	out, err := r.PropagateLabels(PropagateOptions{
		MaskVolume:  "mask.nii.gz",
		LabelVolume: "labels.nii.gz",
	})
	if err != nil {
		t.Fatalf("PropagateLabels() error = %v", err)
	}
	if filepath.Base(out) != "PropagateLabelsThroughMask.nii.gz" {
		t.Errorf("default output = %q", out)
	}

	want := []string{"ImageMath", "3", out, "PropagateLabelsThroughMask", "mask.nii.gz", "labels.nii.gz"}
	if len(fake.calls) != 1 || !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("argv = %v, want %v", fake.calls, want)
	}
}

func TestPropagateLabelsBinarizesMaskFirst(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	r := NewRunner("", 0)
	out := filepath.Join(tmp, "propagated.nii.gz")
	if _, err := r.PropagateLabels(PropagateOptions{
		MaskVolume:  "brain.nii.gz",
		LabelVolume: "labels.nii.gz",
		OutputFile:  out,
		Binarize:    true,
	}); err != nil {
		t.Fatalf("PropagateLabels() error = %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(fake.calls))
	}
	binarized := filepath.Join(tmp, "binarized_mask.nii.gz")
	wantFirst := []string{"ThresholdImage", "3", "brain.nii.gz", binarized, "0", "1", "0", "1"}
	if !reflect.DeepEqual(fake.calls[0], wantFirst) {
		t.Errorf("binarize argv = %v, want %v", fake.calls[0], wantFirst)
	}
	wantSecond := []string{"ImageMath", "3", out, "PropagateLabelsThroughMask", binarized, "labels.nii.gz"}
	if !reflect.DeepEqual(fake.calls[1], wantSecond) {
		t.Errorf("propagate argv = %v, want %v", fake.calls[1], wantSecond)
	}
}

func TestPropagateLabelsWithMaskIndex(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	fake := &fakeToolkit{}
	withFakeToolkit(t, fake)

	r := NewRunner("", 0)
	out := filepath.Join(tmp, "propagated.nii.gz")
	if _, err := r.PropagateLabels(PropagateOptions{
		MaskVolume:  "aseg.nii.gz",
		LabelVolume: "labels.nii.gz",
		MaskIndex:   2,
		OutputFile:  out,
	}); err != nil {
		t.Fatalf("PropagateLabels() error = %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(fake.calls))
	}
	selected := filepath.Join(tmp, "mask_index.nii.gz")
	wantFirst := []string{"ThresholdImage", "3", "aseg.nii.gz", selected, "2", "2", "1", "0"}
	if !reflect.DeepEqual(fake.calls[0], wantFirst) {
		t.Errorf("select argv = %v, want %v", fake.calls[0], wantFirst)
	}
	if fake.calls[1][4] != selected {
		t.Errorf("propagation should use the selected mask, got %v", fake.calls[1])
	}
}
