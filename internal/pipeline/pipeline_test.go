package pipeline

import (
	"strings"
	"testing"

	e "antler/pkg/errors"
)

func errCode(t *testing.T, err error) e.ErrorCode {
	t.Helper()
	antErr, ok := err.(*e.AntlerError)
	if !ok {
		t.Fatalf("expected *AntlerError, got %T: %v", err, err)
	}
	return antErr.Code
}

func TestParseInterpolatesVars(t *testing.T) {
	f, err := Parse([]byte(`
name: dkt-fill
vars:
  subject: /data/sub-01
  atlas: /atlas/MNI152.nii.gz
steps:
  - op: register
    source: ${subject}/t1.nii.gz
    target: ${atlas}
  - name: warp-labels
    op: warp
    source: /atlas/dkt.nii.gz
    target: ${subject}/t1.nii.gz
    stem: ${subject}/t1_to_MNI152
    inverse: true
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Steps[0].Source != "/data/sub-01/t1.nii.gz" {
		t.Errorf("source = %q", f.Steps[0].Source)
	}
	if f.Steps[0].Target != "/atlas/MNI152.nii.gz" {
		t.Errorf("target = %q", f.Steps[0].Target)
	}
	if f.Steps[1].Stem != "/data/sub-01/t1_to_MNI152" {
		t.Errorf("stem = %q", f.Steps[1].Stem)
	}
}

func TestParseDefaultsStepNames(t *testing.T) {
	f, err := Parse([]byte(`
steps:
  - op: threshold
    input: mask.nii.gz
  - op: threshold
    input: other.nii.gz
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Steps[0].Name != "threshold-1" || f.Steps[1].Name != "threshold-2" {
		t.Errorf("names = %q, %q", f.Steps[0].Name, f.Steps[1].Name)
	}
}

func TestParseUndefinedVar(t *testing.T) {
	_, err := Parse([]byte(`
steps:
  - op: threshold
    input: ${missing}/mask.nii.gz
`))
	if err == nil {
		t.Fatal("expected error for undefined variable")
	}
	if errCode(t, err) != e.ErrInvalidPipeline {
		t.Errorf("code = %v", errCode(t, err))
	}
	if !strings.Contains(err.Error(), "${missing}") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code e.ErrorCode
	}{
		{"no steps", `name: empty`, e.ErrInvalidPipeline},
		{"unknown op", "steps:\n  - op: segment\n", e.ErrInvalidPipeline},
		{"math missing volumes", "steps:\n  - op: math\n    volume1: a.nii.gz\n", e.ErrInvalidPipeline},
		{"register missing target", "steps:\n  - op: register\n    source: a.nii.gz\n", e.ErrInvalidPipeline},
		{"warp without transforms", "steps:\n  - op: warp\n    source: a.nii.gz\n    target: b.nii.gz\n", e.ErrTransformUnspecified},
		{"fill without surfaces", "steps:\n  - op: fill\n    mask: m.nii.gz\n", e.ErrInvalidPipeline},
		{"duplicate names", "steps:\n  - name: x\n    op: threshold\n    input: a.nii.gz\n  - name: x\n    op: threshold\n    input: b.nii.gz\n", e.ErrInvalidPipeline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if errCode(t, err) != tt.code {
				t.Errorf("code = %v, want %v", errCode(t, err), tt.code)
			}
		})
	}
}

func TestStepInputs(t *testing.T) {
	f, err := Parse([]byte(`
steps:
  - op: warp
    source: dkt.nii.gz
    target: t1.nii.gz
    stem: t1_to_MNI152
    inverse: true
  - op: propagate
    mask: mask.nii.gz
    labels: labels.nii.gz
`))
	if err != nil {
		t.Fatal(err)
	}

	warp := f.Steps[0].Inputs()
	want := map[string]bool{
		"dkt.nii.gz":                     true,
		"t1.nii.gz":                      true,
		"t1_to_MNI152Affine.txt":         true,
		"t1_to_MNI152InverseWarp.nii.gz": true,
	}
	if len(warp) != len(want) {
		t.Fatalf("warp inputs = %v", warp)
	}
	for _, in := range warp {
		if !want[in] {
			t.Errorf("unexpected input %q", in)
		}
	}

	prop := f.Steps[1].Inputs()
	if len(prop) != 2 {
		t.Errorf("propagate inputs = %v", prop)
	}
}

func TestStepIdentityChangesWithOptions(t *testing.T) {
	base := Step{Op: OpThreshold, Input: "mask.nii.gz", Lo: 1, Hi: 1, Inside: 1}
	other := base
	other.Hi = 2

	a := strings.Join(base.identity(), "\x00")
	b := strings.Join(other.identity(), "\x00")
	if a == b {
		t.Error("different options should produce different identities")
	}
}

func TestBinarizeDefaults(t *testing.T) {
	prop := Step{Op: OpPropagate}
	if !prop.binarize() {
		t.Error("propagate should binarize by default")
	}
	fill := Step{Op: OpFill}
	if fill.binarize() {
		t.Error("fill should not binarize by default")
	}
	off := false
	prop.Binarize = &off
	if prop.binarize() {
		t.Error("explicit false should win")
	}
}
