package provenance

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Record captures one completed toolkit invocation.
type Record struct {
	Tool           string            `json:"tool"`
	Args           []string          `json:"args"`
	Inputs         map[string]string `json:"inputs"`  // path -> content digest
	Outputs        map[string]string `json:"outputs"` // path -> content digest
	Algorithm      string            `json:"algorithm"`
	ToolkitVersion string            `json:"toolkit_version,omitempty"`
	Duration       time.Duration     `json:"duration_ns"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Store persists records as JSON files keyed by invocation identity.
type Store struct {
	dir string
}

// DefaultDir returns the record directory under the user's home.
func DefaultDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.Getwd()
	}
	return filepath.Join(home, ".antler", "provenance")
}

// NewStore opens (creating if needed) a record store at dir. An empty dir
// uses DefaultDir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Key derives a stable identity for an invocation from its tool and argv.
func (s *Store) Key(tool string, args []string) string {
	h := blake3.New()
	h.Write([]byte(tool))
	for _, a := range args {
		h.Write([]byte{0})
		h.Write([]byte(a))
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}

// Save writes the record for its invocation key.
func (s *Store) Save(rec *Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, s.Key(rec.Tool, rec.Args)+".json")
	return os.WriteFile(path, b, 0o644)
}

// Load reads the record for tool+args. A missing record returns os.ErrNotExist.
func (s *Store) Load(tool string, args []string) (*Record, error) {
	path := filepath.Join(s.dir, s.Key(tool, args)+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("record %s unreadable: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// UpToDate reports whether the recorded invocation still holds: the same
// inputs hash to the same digests and every recorded output still exists.
func (s *Store) UpToDate(tool string, args []string, d *Digester) bool {
	rec, err := s.Load(tool, args)
	if err != nil {
		return false
	}
	if rec.Algorithm != "" && rec.Algorithm != d.Algorithm().String() {
		return false
	}
	for path, want := range rec.Inputs {
		got, err := d.File(path)
		if err != nil || got != want {
			return false
		}
	}
	for path := range rec.Outputs {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// Clean removes records older than maxAge and returns how many went away.
func (s *Store) Clean(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

// Stats returns the record count and total size on disk.
func (s *Store) Stats() (count int, size int64, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if info, infoErr := entry.Info(); infoErr == nil {
			count++
			size += info.Size()
		}
	}
	return count, size, nil
}

// Reset deletes every record and recreates the store directory.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.MkdirAll(s.dir, 0o755)
}
