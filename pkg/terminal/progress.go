package terminal

import (
	"fmt"
	"strings"
	"time"
)

// StepProgress renders progress through a fixed sequence of named steps,
// e.g. the stages of a registration pipeline.
type StepProgress struct {
	total   int
	current int
	width   int
	prefix  string
	start   time.Time
}

// NewStepProgress creates a progress renderer for total steps.
func NewStepProgress(total int, prefix string) *StepProgress {
	return &StepProgress{
		total:  total,
		width:  40,
		prefix: prefix,
		start:  time.Now(),
	}
}

// Step advances to the next step and shows its label.
func (p *StepProgress) Step(label string) {
	p.current++
	p.render(label)
}

// Skip advances past a step that was not executed.
func (p *StepProgress) Skip(label string) {
	p.current++
	p.render(label + " (cached)")
}

// Finish completes the progress display.
func (p *StepProgress) Finish() {
	p.current = p.total
	p.render("done")
	if IsTerminal() {
		fmt.Println()
	}
}

func (p *StepProgress) render(label string) {
	if !IsTerminal() {
		return
	}

	percent := float64(p.current) / float64(p.total)
	filled := int(percent * float64(p.width))
	if filled > p.width {
		filled = p.width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	elapsed := time.Since(p.start).Seconds()

	fmt.Printf("\r%s [%s] %d/%d %s (%.1fs)", p.prefix, bar, p.current, p.total, label, elapsed)
}
