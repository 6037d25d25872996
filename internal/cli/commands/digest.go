// The digest command hashes subject directories and manages the
// provenance record store, for debugging resume decisions.
package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"antler/internal/provenance"
	e "antler/pkg/errors"
)

// DigestCommand calculates directory digests and inspects the record store.
type DigestCommand struct{}

// NewDigestCommand creates a new digest command instance.
func NewDigestCommand() *DigestCommand {
	return &DigestCommand{}
}

// digestConfig holds the parsed command configuration.
type digestConfig struct {
	rootDir    string
	verbose    bool
	showFiles  bool
	algorithm  string
	ignoreFile string
	stats      bool
	reset      bool
	cleanDays  int
	showHelp   bool
}

// Run executes the digest command with the provided arguments.
func (d *DigestCommand) Run(args []string) error {
	cfg := d.parseFlags(args)
	if cfg.showHelp {
		d.showHelp()
		return nil
	}

	if cfg.stats || cfg.reset || cfg.cleanDays > 0 {
		return d.runStoreMode(&cfg)
	}

	alg, err := provenance.ParseAlgorithm(cfg.algorithm)
	if err != nil {
		return e.Wrap(err, e.ErrInvalidConfig, "Unsupported digest algorithm")
	}
	digester := provenance.NewDigesterWithAlgorithm(alg)

	rules := provenance.NewIgnoreRules()
	if cfg.ignoreFile != "" {
		if err := rules.LoadFile(cfg.ignoreFile); err != nil {
			return e.Wrap(err, e.ErrInputNotFound,
				fmt.Sprintf("Cannot read ignore file %s", cfg.ignoreFile))
		}
	}

	res, err := digester.Directory(context.Background(), cfg.rootDir, rules)
	if err != nil {
		return e.Wrap(err, e.ErrInputNotFound, "Failed to digest directory")
	}

	fmt.Printf("🔐 Digest: %s\n", res.Digest[:16])
	fmt.Printf("📁 Files: %d\n", len(res.Files))
	if cfg.verbose {
		fmt.Printf("Algorithm: %s\n", res.Algorithm)
		fmt.Printf("Full Hash: %s\n", res.Digest)
		fmt.Printf("Total Size: %s\n", formatFileSize(res.TotalSize))
		if cfg.showFiles {
			fmt.Println("\nFiles included in digest:")
			for _, f := range res.Files {
				fmt.Printf("  %s (%s) - %s\n", f.Path, formatFileSize(f.Size), f.Hash[:12])
			}
		}
	}
	return nil
}

// runStoreMode handles the record-store maintenance flags.
func (d *DigestCommand) runStoreMode(cfg *digestConfig) error {
	store, err := provenance.NewStore("")
	if err != nil {
		return e.Wrap(err, e.ErrProvenanceCorrupted, "Cannot open the record store")
	}

	if cfg.reset {
		if err := store.Reset(); err != nil {
			return e.Wrap(err, e.ErrProvenanceCorrupted, "Failed to reset the record store")
		}
		fmt.Println("🧹 Record store reset")
		return nil
	}
	if cfg.cleanDays > 0 {
		removed, err := store.Clean(time.Duration(cfg.cleanDays) * 24 * time.Hour)
		if err != nil {
			return e.Wrap(err, e.ErrProvenanceCorrupted, "Failed to clean the record store")
		}
		fmt.Printf("🧹 Removed %d record(s) older than %d days\n", removed, cfg.cleanDays)
		return nil
	}

	count, size, err := store.Stats()
	if err != nil {
		return e.Wrap(err, e.ErrProvenanceCorrupted, "Failed to read the record store")
	}
	fmt.Printf("📊 Record store: %d record(s), %s at %s\n", count, formatFileSize(size), store.Dir())
	return nil
}

// parseFlags parses command line arguments and returns configuration.
func (d *DigestCommand) parseFlags(args []string) digestConfig {
	cfg := digestConfig{rootDir: "."}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			cfg.showHelp = true
		case "-v", "--verbose":
			cfg.verbose = true
		case "--files":
			cfg.showFiles = true
		case "--algorithm":
			if i+1 < len(args) {
				cfg.algorithm = args[i+1]
				i++
			}
		case "--ignore-file":
			if i+1 < len(args) {
				cfg.ignoreFile = args[i+1]
				i++
			}
		case "--stats":
			cfg.stats = true
		case "--reset":
			cfg.reset = true
		case "--clean":
			if i+1 < len(args) {
				if days, err := strconv.Atoi(args[i+1]); err == nil {
					cfg.cleanDays = days
				}
				i++
			}
		default:
			cfg.rootDir = args[i]
		}
	}
	return cfg
}

// formatFileSize formats a byte count as a human-readable string.
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// showHelp displays the command usage information.
func (d *DigestCommand) showHelp() {
	fmt.Println(`antler digest - Hash subject directories and manage provenance records

USAGE:
    antler digest [DIR] [OPTIONS]

OPTIONS:
    -h, --help           Show this help message
    -v, --verbose        Show detailed information
    --files              List the files included in the digest
    --algorithm ALGO     Hash algorithm: blake3 (default), sha256
    --ignore-file FILE   Extra gitignore-style exclusion patterns
    --stats              Show record store statistics
    --clean DAYS         Remove records older than DAYS days
    --reset              Delete every provenance record

EXAMPLES:
    antler digest /data/sub-01                   # hash a subject directory
    antler digest --verbose --files              # show what participates
    antler digest --stats                        # record store health
    antler digest --clean 30                     # drop month-old records

Scratch files (.git/, *.log, *.tmp, ...) are excluded by default; resume
decisions for 'antler pipeline run --resume' come from these digests.`)
}

// Digest provides the main entry point for the digest command.
func Digest(args []string) error {
	cmd := NewDigestCommand()
	return cmd.Run(args)
}
