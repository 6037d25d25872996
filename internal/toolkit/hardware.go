// Hardware detection and optimization hints. ITK-based ANTs binaries are
// sensitive to SIMD width and thread count, so the profile feeds both the
// doctor report and the ITK thread environment passed to invocations.
package toolkit

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// HardwareProfile describes the host system
type HardwareProfile struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	CPUBrand     string `json:"cpu_brand"`
	LogicalCores int    `json:"logical_cores"`
	HasAVX2      bool   `json:"avx2"`
	HasAVX512    bool   `json:"avx512"`
}

// detectHardware fills the hardware profile using CPUID where available.
func (m *Manager) detectHardware() {
	m.hardware = HardwareProfile{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		CPUBrand:     cpuid.CPU.BrandName,
		LogicalCores: cpuid.CPU.LogicalCores,
		HasAVX2:      cpuid.CPU.Supports(cpuid.AVX2),
		HasAVX512:    cpuid.CPU.Supports(cpuid.AVX512F),
	}
	if m.hardware.LogicalCores <= 0 {
		m.hardware.LogicalCores = runtime.NumCPU()
	}
	if m.hardware.CPUBrand == "" {
		m.hardware.CPUBrand = strUnknown
	}
}

// RecommendedThreads returns the ITK thread count to pass to invocations.
// Registration scales well up to physical core counts; beyond that the
// ITK thread pool mostly adds contention.
func (p HardwareProfile) RecommendedThreads() int {
	n := p.LogicalCores
	if n > 2 {
		n-- // leave a core for the rest of the system
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Summary returns a one-line description for display.
func (p HardwareProfile) Summary() string {
	simd := "no AVX2"
	switch {
	case p.HasAVX512:
		simd = "AVX-512"
	case p.HasAVX2:
		simd = "AVX2"
	}
	return fmt.Sprintf("%s, %d cores, %s", p.CPUBrand, p.LogicalCores, simd)
}

// OptimizationHints returns platform-specific performance tips
func (m *Manager) OptimizationHints() []string {
	hints := []string{}
	if !m.hardware.HasAVX2 && m.hardware.Arch == "amd64" {
		hints = append(hints,
			"CPU lacks AVX2; registration will be slow. Prefer a newer host for large cohorts.")
	}
	if m.hardware.LogicalCores >= 4 {
		hints = append(hints, fmt.Sprintf(
			"ITK_GLOBAL_DEFAULT_NUMBER_OF_THREADS is set to %d for invocations (override in ~/.antler.json)",
			m.hardware.RecommendedThreads()))
	}
	if in := m.SelectOptimal(); in != nil && in.Version == strUnknown {
		hints = append(hints,
			"Could not probe the ANTs version; very old builds miss several ImageMath operators.")
	}
	return hints
}
