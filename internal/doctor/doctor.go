// Package doctor provides system health checks for antler.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"antler/internal/provenance"
	"antler/internal/toolkit"
)

// Doctor performs comprehensive system health checks
type Doctor struct {
	checks  []HealthCheck
	verbose bool
}

// HealthCheck represents a single diagnostic check
type HealthCheck interface {
	Name() string
	Description() string
	Run() CheckResult
	CanAutoFix() bool
	Fix() error
	Severity() Severity
}

// CheckResult contains the outcome of a health check
type CheckResult struct {
	Status     Status
	Message    string
	Details    string
	FixCommand string
	Impact     string
}

// Status represents check status
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
	StatusCritical
)

// Severity indicates how important a fix is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// HealthReport summarizes checks
type HealthReport struct {
	TotalChecks int
	Passed      int
	Warnings    int
	Errors      int
	Critical    int
	StartTime   time.Time
	EndTime     time.Time
}

// Run executes all checks and prints a concise report
func (d *Doctor) Run() HealthReport {
	d.checks = []HealthCheck{
		&ToolkitCheck{},
		&DiskSpaceCheck{},
		&PermissionsCheck{},
		&ProvenanceCheck{},
		&CPUCheck{},
	}
	rpt := HealthReport{StartTime: time.Now()}
	fmt.Println("\n🦌 antler doctor - System Health Check")
	fmt.Println(strings.Repeat("=", 52))
	for _, c := range d.checks {
		res := c.Run()
		d.printResult(res)
		rpt.TotalChecks++
		switch res.Status {
		case StatusOK:
			rpt.Passed++
		case StatusWarning:
			rpt.Warnings++
		case StatusError:
			rpt.Errors++
		case StatusCritical:
			rpt.Critical++
		}
	}
	rpt.EndTime = time.Now()
	// Simple health score: 100 minus penalties
	score := 100
	score -= rpt.Warnings * 5
	score -= rpt.Errors * 15
	score -= rpt.Critical * 25
	if score < 0 {
		score = 0
	}
	fmt.Printf("\n⏱  Completed in %.2fs\n", rpt.EndTime.Sub(rpt.StartTime).Seconds())
	fmt.Printf("Health Score: %d/100\n", score)
	fmt.Println("Run 'antler doctor --fix' to auto-fix issues where possible")
	return rpt
}

func (d *Doctor) printResult(r CheckResult) {
	icon := "✅"
	switch r.Status {
	case StatusOK:
		// keep default icon
	case StatusWarning:
		icon = "⚠️ "
	case StatusError, StatusCritical:
		icon = "❌"
	}
	fmt.Printf("%s %s\n", icon, r.Message)
	if r.Details != "" && d.verbose {
		fmt.Printf("   %s\n", r.Details)
	}
	if r.FixCommand != "" && r.Status != StatusOK {
		fmt.Printf("   💡 Fix: %s\n", r.FixCommand)
	}
	if r.Impact != "" && r.Status == StatusCritical {
		fmt.Printf("   ⚠️  Impact: %s\n", r.Impact)
	}
}

// stateDir is where antler keeps provenance, logs and crash reports.
func stateDir() string {
	return filepath.Join(os.Getenv("HOME"), ".antler")
}

// ToolkitCheck verifies that a complete ANTs installation is reachable.
type ToolkitCheck struct{}

func (t *ToolkitCheck) Name() string        { return "ANTs Toolkit" }
func (t *ToolkitCheck) Description() string { return "Checking for a complete ANTs installation" }
func (t *ToolkitCheck) CanAutoFix() bool    { return false }
func (t *ToolkitCheck) Fix() error          { return nil }
func (t *ToolkitCheck) Severity() Severity  { return SeverityCritical }

func (t *ToolkitCheck) Run() CheckResult {
	m := toolkit.NewManager()
	in := m.SelectOptimal()
	if in == nil {
		return CheckResult{
			Status:     StatusCritical,
			Message:    "No ANTs installation found",
			Details:    "antler drives the ImageMath, ANTS, WarpImageMultiTransform and ThresholdImage binaries",
			FixCommand: "Install ANTs, set ANTSPATH, then run 'antler setup'",
			Impact:     "Every antler operation will fail",
		}
	}
	if !in.Complete() {
		return CheckResult{
			Status:     StatusError,
			Message:    fmt.Sprintf("ANTs install at %s is incomplete", in.Dir),
			Details:    "missing: " + strings.Join(in.Missing, ", "),
			FixCommand: "Point ANTSPATH at a full ANTs bin directory",
			Impact:     "Operations needing the missing binaries will fail",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("ANTs %s at %s (healthy)", in.Version, in.Dir)}
}

// DiskSpaceCheck ensures sufficient disk space for intermediate volumes.
type DiskSpaceCheck struct{}

func (d *DiskSpaceCheck) Name() string        { return "Disk Space" }
func (d *DiskSpaceCheck) Description() string { return "Checking available disk" }
func (d *DiskSpaceCheck) CanAutoFix() bool    { return false }
func (d *DiskSpaceCheck) Fix() error          { return nil }
func (d *DiskSpaceCheck) Severity() Severity  { return SeverityMedium }

func (d *DiskSpaceCheck) Run() CheckResult {
	wd, err := os.Getwd()
	if err != nil {
		wd = "/"
	}
	var st unix.Statfs_t
	if err := unix.Statfs(wd, &st); err != nil {
		return CheckResult{Status: StatusWarning, Message: "Could not check disk space"}
	}
	freeGB := float64(st.Bavail) * float64(st.Bsize) / (1 << 30)
	if freeGB < 5 {
		return CheckResult{
			Status:     StatusWarning,
			Message:    fmt.Sprintf("Low disk space: %.1fGB free", freeGB),
			Details:    "Registration writes multi-hundred-MB warp fields next to the inputs",
			FixCommand: "antler digest --clean 30",
			Impact:     "Invocations may fail mid-write",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Sufficient disk space available (%.0fGB free)", freeGB)}
}

// PermissionsCheck verifies the antler state directory is usable.
type PermissionsCheck struct{}

func (p *PermissionsCheck) Name() string        { return "Permissions" }
func (p *PermissionsCheck) Description() string { return "Checking permissions" }
func (p *PermissionsCheck) CanAutoFix() bool    { return true }
func (p *PermissionsCheck) Fix() error {
	// Ensure ~/.antler exists with 0700 permissions
	dir := stateDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o700)
	}
	return os.Chmod(dir, 0o700)
}
func (p *PermissionsCheck) Severity() Severity { return SeverityMedium }

func (p *PermissionsCheck) Run() CheckResult {
	dir := stateDir()
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Status:     StatusWarning,
			Message:    "State directory ~/.antler does not exist yet",
			FixCommand: "antler doctor --fix",
			Impact:     "Provenance and debug logs cannot be written",
		}
	}
	if err != nil || !info.IsDir() {
		return CheckResult{Status: StatusError, Message: "~/.antler is not a directory", Impact: "State cannot be saved"}
	}
	if info.Mode().Perm()&0o700 != 0o700 {
		return CheckResult{
			Status:     StatusWarning,
			Message:    "State directory has incorrect permissions",
			FixCommand: "chmod 700 ~/.antler",
			Impact:     "Provenance may not save",
		}
	}
	return CheckResult{Status: StatusOK, Message: "All permissions correct"}
}

// ProvenanceCheck verifies record store health.
type ProvenanceCheck struct{}

func (c *ProvenanceCheck) Name() string        { return "Provenance" }
func (c *ProvenanceCheck) Description() string { return "Checking the invocation record store" }
func (c *ProvenanceCheck) CanAutoFix() bool    { return true }
func (c *ProvenanceCheck) Fix() error {
	store, err := provenance.NewStore("")
	if err != nil {
		return err
	}
	// Drop records older than 30 days.
	_, err = store.Clean(30 * 24 * time.Hour)
	return err
}
func (c *ProvenanceCheck) Severity() Severity { return SeverityLow }

func (c *ProvenanceCheck) Run() CheckResult {
	store, err := provenance.NewStore("")
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: "Could not open the record store"}
	}
	count, size, err := store.Stats()
	if err != nil {
		return CheckResult{Status: StatusWarning, Message: "Could not read the record store"}
	}
	if count > 5000 {
		return CheckResult{
			Status:     StatusWarning,
			Message:    fmt.Sprintf("High record count: %d records (%.1fMB)", count, float64(size)/(1<<20)),
			FixCommand: "antler digest --clean 30",
			Impact:     "Resume checks slow down as the store grows",
		}
	}
	return CheckResult{Status: StatusOK, Message: fmt.Sprintf("Record store healthy: %d records", count)}
}

// CPUCheck surfaces SIMD and threading hints for the ITK-based binaries.
type CPUCheck struct{}

func (c *CPUCheck) Name() string        { return "CPU" }
func (c *CPUCheck) Description() string { return "Checking CPU capabilities" }
func (c *CPUCheck) CanAutoFix() bool    { return false }
func (c *CPUCheck) Fix() error          { return nil }
func (c *CPUCheck) Severity() Severity  { return SeverityInfo }

func (c *CPUCheck) Run() CheckResult {
	m := toolkit.NewManager()
	hw := m.Hardware()
	if !hw.HasAVX2 && hw.Arch == "amd64" {
		return CheckResult{
			Status:  StatusWarning,
			Message: fmt.Sprintf("CPU lacks AVX2 (%s)", hw.Summary()),
			Details: "ITK vectorizes registration heavily; expect long SyN runtimes",
			Impact:  "Large cohorts will be slow on this host",
		}
	}
	return CheckResult{
		Status:  StatusOK,
		Message: fmt.Sprintf("CPU suitable: %s", hw.Summary()),
		Details: fmt.Sprintf("invocations default to %d ITK threads", hw.RecommendedThreads()),
	}
}

// Fix attempts automatic fixes for checks that support it.
func (d *Doctor) Fix() {
	fmt.Println("\n🔧 Attempting to fix issues...")
	for _, c := range d.checks {
		res := c.Run()
		if res.Status != StatusOK && c.CanAutoFix() {
			if err := c.Fix(); err != nil {
				fmt.Printf("❌ %s: fix failed: %v\n", c.Name(), err)
			} else {
				fmt.Printf("✅ %s: fixed\n", c.Name())
			}
		}
	}
}

// RunDoctorWithOptions runs checks and optionally applies fixes.
func RunDoctorWithOptions(verbose, fix bool) {
	d := &Doctor{verbose: verbose}
	_ = d.Run()
	if fix {
		d.Fix()
	}
}
