// Package toolkit provides discovery and selection of legacy ANTs
// installations. Binaries may live in a directory named by ANTLER_ANTS_BIN
// or ANTSPATH, on PATH, or under a handful of well-known prefixes.
package toolkit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// testable exec wrappers
var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// Install describes one discovered ANTs installation.
type Install struct {
	Dir      string            `json:"dir"`      // bin directory, "" when resolved via PATH
	Source   string            `json:"source"`   // how it was discovered
	Version  string            `json:"version"`  // probed from the ANTS binary
	Binaries map[string]string `json:"binaries"` // tool name -> absolute path
	Missing  []string          `json:"missing"`  // required tools not present
}

// Complete reports whether every required binary was found.
func (in *Install) Complete() bool { return len(in.Missing) == 0 }

// Path returns the absolute path of the named tool within this install.
func (in *Install) Path(name string) (string, error) {
	if p, ok := in.Binaries[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s not present in ANTs install at %s", name, in.Dir)
}

// Manager discovers ANTs installations and selects the one to use.
type Manager struct {
	installs []Install
	hardware HardwareProfile
}

// NewManager constructs a manager and probes the host for installations.
func NewManager() *Manager {
	m := &Manager{}
	m.detectHardware()
	m.discoverInstalls()
	return m
}

// discoverInstalls probes the environment, PATH and well-known prefixes
// in priority order. The first hit for a directory wins; duplicates are
// collapsed.
func (m *Manager) discoverInstalls() {
	seen := make(map[string]bool)

	add := func(dir, source string) {
		if dir != "" {
			abs, err := filepath.Abs(dir)
			if err == nil {
				dir = abs
			}
		}
		if seen[dir] {
			return
		}
		seen[dir] = true
		if in, ok := m.probeDir(dir, source); ok {
			m.installs = append(m.installs, in)
		}
	}

	if dir := os.Getenv(envAntlerBin); dir != "" {
		add(dir, srcEnvAntler)
	}
	if dir := os.Getenv(envANTSPath); dir != "" {
		add(dir, srcEnvANTSPath)
	}
	// PATH: locate any required tool and treat its directory as an install
	for _, tool := range RequiredTools {
		if p, err := lookPath(tool); err == nil {
			add(filepath.Dir(p), srcPath)
			break
		}
	}
	for _, dir := range wellKnownDirs {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			add(dir, srcWellKnown)
		}
	}
}

// probeDir inspects dir for the required binaries. A directory with none
// of them is not an install at all.
func (m *Manager) probeDir(dir, source string) (Install, bool) {
	in := Install{
		Dir:      dir,
		Source:   source,
		Binaries: make(map[string]string),
	}
	for _, tool := range RequiredTools {
		p := filepath.Join(dir, tool)
		if runtime.GOOS == "windows" {
			p += ".exe"
		}
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			in.Binaries[tool] = p
		} else {
			in.Missing = append(in.Missing, tool)
		}
	}
	if len(in.Binaries) == 0 {
		return Install{}, false
	}
	in.Version = m.probeVersion(&in)
	return in, true
}

// SelectOptimal returns the preferred install: the first complete one in
// discovery order, else the least incomplete as a last resort.
func (m *Manager) SelectOptimal() *Install {
	for i := range m.installs {
		if m.installs[i].Complete() {
			return &m.installs[i]
		}
	}
	var best *Install
	for i := range m.installs {
		if best == nil || len(m.installs[i].Missing) < len(best.Missing) {
			best = &m.installs[i]
		}
	}
	return best
}

// Installs returns all discovered installations.
func (m *Manager) Installs() []Install { return m.installs }

// Hardware returns the detected hardware profile.
func (m *Manager) Hardware() HardwareProfile { return m.hardware }

// ShowToolkitInfo prints the discovered installs and selection.
func (m *Manager) ShowToolkitInfo() {
	fmt.Printf("Host: %s/%s, %s\n", runtime.GOOS, runtime.GOARCH, m.hardware.Summary())

	if len(m.installs) == 0 {
		fmt.Println("No ANTs installation found.")
		fmt.Println("Set ANTSPATH or install ANTs, then run 'antler setup'.")
		return
	}

	selected := m.SelectOptimal()
	fmt.Println("ANTs installations:")
	for i := range m.installs {
		in := &m.installs[i]
		mark := "✅"
		if !in.Complete() {
			mark = "⚠️ "
		}
		active := ""
		if selected != nil && in.Dir == selected.Dir {
			active = " [ACTIVE]"
		}
		fmt.Printf("  %s %-40s %-10s via %s%s\n", mark, in.Dir, in.Version, in.Source, active)
		if !in.Complete() {
			fmt.Printf("     missing: %s\n", strings.Join(in.Missing, ", "))
		}
	}

	hints := m.OptimizationHints()
	if len(hints) > 0 {
		fmt.Println("\n💡 Optimization Tips:")
		for _, h := range hints {
			fmt.Printf("  • %s\n", h)
		}
	}
}
