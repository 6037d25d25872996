// Package provenance records what antler ran and what it ran it on.
// Input and output volumes are identified by content digest, so a pipeline
// step whose inputs are unchanged and whose outputs still exist can be
// skipped on re-run.
package provenance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
)

// Algorithm selects the content hash.
type Algorithm int

const (
	// Blake3 is the default; fast on the multi-hundred-MB volumes ANTs eats.
	Blake3 Algorithm = iota
	// SHA256 is kept for records written by older releases.
	SHA256
)

func (a Algorithm) String() string {
	if a == SHA256 {
		return "sha256"
	}
	return "blake3"
}

// ParseAlgorithm maps a config string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "", "blake3":
		return Blake3, nil
	case "sha256":
		return SHA256, nil
	default:
		return Blake3, fmt.Errorf("unknown digest algorithm %q", s)
	}
}

// FileDigest is one hashed file.
type FileDigest struct {
	Path string
	Size int64
	Hash string
}

// Result is a combined digest over a set of files.
type Result struct {
	Algorithm Algorithm
	Digest    string
	Files     []FileDigest
	TotalSize int64
}

// Digester hashes volume files. Large volumes are streamed, never read
// whole into memory.
type Digester struct {
	algorithm Algorithm
	workers   int
}

// NewDigester creates a Blake3 digester with a small worker pool.
func NewDigester() *Digester {
	return &Digester{algorithm: Blake3, workers: 4}
}

// NewDigesterWithAlgorithm selects the hash explicitly.
func NewDigesterWithAlgorithm(a Algorithm) *Digester {
	return &Digester{algorithm: a, workers: 4}
}

// Algorithm returns the configured hash.
func (d *Digester) Algorithm() Algorithm { return d.algorithm }

func (d *Digester) newHash() hash.Hash {
	if d.algorithm == SHA256 {
		return sha256.New()
	}
	return blake3.New()
}

// File streams one file through the hash.
func (d *Digester) File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := d.newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Files hashes the given files in parallel and returns path -> digest.
func (d *Digester) Files(ctx context.Context, paths []string) (map[string]string, error) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	type item struct {
		path, hash string
		err        error
	}

	workCh := make(chan string, len(sorted))
	resCh := make(chan item, len(sorted))

	workers := d.workers
	if workers > len(sorted) {
		workers = len(sorted)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range workCh {
				select {
				case <-ctx.Done():
					resCh <- item{path: p, err: ctx.Err()}
					continue
				default:
				}
				h, err := d.File(p)
				resCh <- item{path: p, hash: h, err: err}
			}
		}()
	}

	for _, p := range sorted {
		workCh <- p
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resCh)
	}()

	out := make(map[string]string, len(sorted))
	var firstErr error
	for it := range resCh {
		if it.err != nil {
			if firstErr == nil {
				firstErr = it.err
			}
			continue
		}
		out[it.path] = it.hash
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Directory hashes every file under root that survives the ignore rules
// and combines them into one deterministic digest.
func (d *Digester) Directory(ctx context.Context, root string, rules *IgnoreRules) (*Result, error) {
	if rules == nil {
		rules = NewIgnoreRules()
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if rules.ShouldIgnore(rel, entry.IsDir()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	sort.Strings(files)

	hashes, err := d.Files(ctx, files)
	if err != nil {
		return nil, err
	}

	res := &Result{Algorithm: d.algorithm}
	var combined strings.Builder
	for _, p := range files {
		rel, _ := filepath.Rel(root, p)
		fi, statErr := os.Stat(p)
		var size int64
		if statErr == nil {
			size = fi.Size()
		}
		res.Files = append(res.Files, FileDigest{Path: rel, Size: size, Hash: hashes[p]})
		res.TotalSize += size
		combined.WriteString(rel)
		combined.WriteString(":")
		combined.WriteString(hashes[p])
		combined.WriteString("\n")
	}

	h := d.newHash()
	h.Write([]byte(combined.String()))
	res.Digest = hex.EncodeToString(h.Sum(nil))
	return res, nil
}
