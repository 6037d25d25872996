// Package pipeline runs ordered sequences of toolkit operations described
// in a YAML file. Steps reference each other's outputs by path; provenance
// records let an unchanged step be skipped on re-run.
package pipeline

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	e "antler/pkg/errors"
)

// Operation names accepted in a step's op field.
const (
	OpMath      = "math"
	OpRegister  = "register"
	OpWarp      = "warp"
	OpThreshold = "threshold"
	OpPropagate = "propagate"
	OpFill      = "fill"
)

// File is a parsed pipeline definition.
type File struct {
	Name  string            `yaml:"name,omitempty"`
	Vars  map[string]string `yaml:"vars,omitempty"`
	Steps []Step            `yaml:"steps"`
}

// Step is one pipeline step. Which fields apply depends on Op; Validate
// enforces the required ones.
type Step struct {
	Name string `yaml:"name,omitempty"`
	Op   string `yaml:"op"`

	// math
	Volume1  string `yaml:"volume1,omitempty"`
	Volume2  string `yaml:"volume2,omitempty"`
	Operator string `yaml:"operator,omitempty"`

	// register, warp
	Source     string `yaml:"source,omitempty"`
	Target     string `yaml:"target,omitempty"`
	Iterations string `yaml:"iterations,omitempty"`
	Stem       string `yaml:"stem,omitempty"`
	Interp     string `yaml:"interp,omitempty"`
	Affine     string `yaml:"affine,omitempty"`
	Nonlinear  string `yaml:"nonlinear,omitempty"`
	Inverse    bool   `yaml:"inverse,omitempty"`
	AffineOnly bool   `yaml:"affine_only,omitempty"`

	// threshold
	Input   string  `yaml:"input,omitempty"`
	Lo      float64 `yaml:"lo,omitempty"`
	Hi      float64 `yaml:"hi,omitempty"`
	Inside  float64 `yaml:"inside,omitempty"`
	Outside float64 `yaml:"outside,omitempty"`

	// propagate, fill
	Mask      string   `yaml:"mask,omitempty"`
	Labels    string   `yaml:"labels,omitempty"`
	MaskIndex int      `yaml:"mask_index,omitempty"`
	Binarize  *bool    `yaml:"binarize,omitempty"`
	Surfaces  []string `yaml:"surfaces,omitempty"`

	Output string `yaml:"output,omitempty"`
}

// Load reads, interpolates, and validates a pipeline file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, e.Wrap(err, e.ErrInvalidPipeline, fmt.Sprintf("Cannot read pipeline file %s", path))
	}
	return Parse(b)
}

// Parse decodes pipeline YAML from memory.
func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, e.Wrap(err, e.ErrInvalidPipeline, "Pipeline file is not valid YAML")
	}
	if err := f.interpolate(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expand substitutes ${var} references from the vars block. Unknown
// variables are an error rather than an empty string, so a typo cannot
// silently produce a wrong path.
func (f *File) expand(s string) (string, error) {
	var expandErr error
	out := varPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		v, ok := f.Vars[name]
		if !ok {
			expandErr = e.New(e.ErrInvalidPipeline,
				fmt.Sprintf("Undefined pipeline variable ${%s}", name))
			return m
		}
		return v
	})
	return out, expandErr
}

func (f *File) interpolate() error {
	for i := range f.Steps {
		s := &f.Steps[i]
		fields := []*string{
			&s.Name, &s.Volume1, &s.Volume2, &s.Operator,
			&s.Source, &s.Target, &s.Iterations, &s.Stem, &s.Interp,
			&s.Affine, &s.Nonlinear, &s.Input, &s.Mask, &s.Labels, &s.Output,
		}
		for _, p := range fields {
			v, err := f.expand(*p)
			if err != nil {
				return err
			}
			*p = v
		}
		for j, surf := range s.Surfaces {
			v, err := f.expand(surf)
			if err != nil {
				return err
			}
			s.Surfaces[j] = v
		}
	}
	return nil
}

// Validate checks structural requirements: at least one step, unique step
// names, known operations, and each operation's required fields.
func (f *File) Validate() error {
	if len(f.Steps) == 0 {
		return e.New(e.ErrInvalidPipeline, "Pipeline has no steps")
	}

	seen := make(map[string]bool, len(f.Steps))
	for i := range f.Steps {
		s := &f.Steps[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("%s-%d", s.Op, i+1)
		}
		if seen[s.Name] {
			return e.New(e.ErrInvalidPipeline,
				fmt.Sprintf("Duplicate step name %q", s.Name))
		}
		seen[s.Name] = true

		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Step) validate() error {
	missing := func(fields ...string) error {
		return e.New(e.ErrInvalidPipeline,
			fmt.Sprintf("Step %q (%s) requires %s", s.Name, s.Op, strings.Join(fields, ", ")))
	}

	switch s.Op {
	case OpMath:
		if s.Volume1 == "" || s.Volume2 == "" {
			return missing("volume1", "volume2")
		}
	case OpRegister:
		if s.Source == "" || s.Target == "" {
			return missing("source", "target")
		}
	case OpWarp:
		if s.Source == "" || s.Target == "" {
			return missing("source", "target")
		}
		if s.Stem == "" && s.Affine == "" && s.Nonlinear == "" {
			return e.New(e.ErrTransformUnspecified,
				fmt.Sprintf("Step %q needs a stem, or affine and nonlinear transforms", s.Name))
		}
	case OpThreshold:
		if s.Input == "" {
			return missing("input")
		}
	case OpPropagate:
		if s.Mask == "" || s.Labels == "" {
			return missing("mask", "labels")
		}
	case OpFill:
		if s.Mask == "" {
			return missing("mask")
		}
		if len(s.Surfaces) == 0 {
			return missing("surfaces")
		}
	default:
		return e.New(e.ErrInvalidPipeline,
			fmt.Sprintf("Step %q has unknown operation %q", s.Name, s.Op))
	}
	return nil
}

// Inputs lists the files a step reads. Provenance digests these; watch
// mode observes them for changes.
func (s *Step) Inputs() []string {
	var in []string
	add := func(paths ...string) {
		for _, p := range paths {
			if p != "" {
				in = append(in, p)
			}
		}
	}

	switch s.Op {
	case OpMath:
		add(s.Volume1, s.Volume2)
	case OpRegister:
		add(s.Source, s.Target)
	case OpWarp:
		add(s.Source, s.Target, s.Affine, s.Nonlinear)
		if s.Stem != "" {
			add(s.Stem + "Affine.txt")
			if s.Inverse {
				add(s.Stem + "InverseWarp.nii.gz")
			} else {
				add(s.Stem + "Warp.nii.gz")
			}
		}
	case OpThreshold:
		add(s.Input)
	case OpPropagate:
		add(s.Mask, s.Labels)
	case OpFill:
		add(s.Mask)
		add(s.Surfaces...)
	}
	return in
}

// identity is the argv-like list that keys a step's provenance record.
// It covers every field that changes the step's result.
func (s *Step) identity() []string {
	id := []string{s.Op}
	id = append(id, s.Inputs()...)
	id = append(id,
		s.Operator, s.Iterations, s.Stem, s.Interp,
		fmt.Sprintf("%v|%v|%d|%v|%v|%v|%v",
			s.Inverse, s.AffineOnly, s.MaskIndex, s.binarize(),
			s.Lo, s.Hi, s.Inside),
		fmt.Sprintf("%v", s.Outside),
		s.Output,
	)
	return id
}

// binarize resolves the optional flag: propagate defaults on, fill off,
// matching the historical wrappers.
func (s *Step) binarize() bool {
	if s.Binarize != nil {
		return *s.Binarize
	}
	return s.Op == OpPropagate
}
