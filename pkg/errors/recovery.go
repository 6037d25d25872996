package errors

import (
	"fmt"
	"os"
	"path/filepath"
)

// RecoveryStrategy defines how to recover from an error
type RecoveryStrategy interface {
	CanRecover(err *AntlerError) bool
	Attempt(err *AntlerError) error
	Description() string
}

// Recoverer attempts to recover from errors
type Recoverer struct {
	strategies []RecoveryStrategy
	verbose    bool
}

// NewRecoverer creates a new error recoverer
func NewRecoverer(verbose bool) *Recoverer {
	return &Recoverer{
		strategies: []RecoveryStrategy{
			&ProvenanceResetStrategy{},
			&DiskSpaceStrategy{},
		},
		verbose: verbose,
	}
}

// Recover attempts to recover from an error
func (r *Recoverer) Recover(err *AntlerError) error {
	if !err.Recoverable {
		return err
	}
	for _, strategy := range r.strategies {
		if strategy.CanRecover(err) {
			if r.verbose {
				fmt.Printf("🔧 Attempting recovery: %s\n", strategy.Description())
			}
			if recErr := strategy.Attempt(err); recErr == nil {
				fmt.Println("✅ Recovery successful!")
				return nil
			} else if r.verbose {
				fmt.Printf("⚠️  Recovery failed: %v\n", recErr)
			}
		}
	}
	return err
}

// ProvenanceResetStrategy clears a corrupted record store
type ProvenanceResetStrategy struct{}

func (s *ProvenanceResetStrategy) CanRecover(err *AntlerError) bool {
	return err.Code == ErrProvenanceCorrupted
}

func (s *ProvenanceResetStrategy) Attempt(err *AntlerError) error {
	fmt.Println("🧹 Clearing corrupted provenance records...")
	dir := err.Context["store"]
	if dir == "" {
		dir = os.ExpandEnv("$HOME/.antler/provenance")
	}
	if rmErr := os.RemoveAll(dir); rmErr != nil {
		return fmt.Errorf("failed to clear records: %w", rmErr)
	}
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return fmt.Errorf("failed to recreate store: %w", mkErr)
	}
	return nil
}

func (s *ProvenanceResetStrategy) Description() string { return "Clearing corrupted records" }

// DiskSpaceStrategy frees space held by antler's own state
type DiskSpaceStrategy struct{}

func (s *DiskSpaceStrategy) CanRecover(err *AntlerError) bool { return err.Code == ErrDiskFull }

func (s *DiskSpaceStrategy) Attempt(err *AntlerError) error {
	fmt.Println("💾 Attempting to free disk space...")
	home := os.Getenv("HOME")
	for _, sub := range []string{"logs", "crashes"} {
		_ = os.RemoveAll(filepath.Join(home, ".antler", sub))
	}
	fmt.Println("✅ Cleared antler logs and crash reports")
	return nil
}

func (s *DiskSpaceStrategy) Description() string { return "Freeing disk space" }
