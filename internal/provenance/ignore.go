package provenance

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreRules manages gitignore-style pattern matching for file exclusion
// when digesting a subject directory. It supports negation (!) and
// directory-only patterns (trailing /).
type IgnoreRules struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	g        glob.Glob
	negate   bool
	dirOnly  bool
	hasSlash bool
}

// NewIgnoreRules creates ignore rules with default exclusions for the
// state and scratch files that show up next to imaging data.
func NewIgnoreRules() *IgnoreRules {
	rules := &IgnoreRules{}

	defaults := []string{
		".git/",
		".antler/",
		".DS_Store",
		"*.log",
		"*.tmp",
		"*.swp",
		"*~",
	}
	for _, p := range defaults {
		// Default patterns are static and known-good.
		_ = rules.AddPattern(p)
	}
	return rules
}

// AddPattern compiles and appends one pattern. Later patterns win, so a
// negation can re-include a file excluded earlier.
func (r *IgnoreRules) AddPattern(pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return nil
	}

	p := ignorePattern{pattern: pattern}
	if strings.HasPrefix(pattern, "!") {
		p.negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		p.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	pattern = strings.TrimPrefix(pattern, "/")
	p.hasSlash = strings.Contains(pattern, "/")

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid ignore pattern %q: %w", p.pattern, err)
	}
	p.g = g
	r.patterns = append(r.patterns, p)
	return nil
}

// LoadFile reads additional patterns, one per line, from an ignore file.
func (r *IgnoreRules) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := r.AddPattern(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ShouldIgnore reports whether the relative path is excluded. The last
// matching pattern decides.
func (r *IgnoreRules) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = strings.TrimSuffix(relPath, "/")
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}

	ignored := false
	for _, p := range r.patterns {
		if p.dirOnly && !isDir {
			// A directory pattern still covers files underneath it.
			if !strings.Contains(relPath, "/") {
				continue
			}
		}

		var matched bool
		if p.hasSlash {
			matched = p.g.Match(relPath)
		} else {
			matched = p.g.Match(base) || matchesAnySegment(p.g, relPath)
		}
		if matched {
			ignored = !p.negate
		}
	}
	return ignored
}

// matchesAnySegment checks a basename pattern against every path segment,
// so "node_modules" style patterns exclude whole subtrees.
func matchesAnySegment(g glob.Glob, relPath string) bool {
	for _, seg := range strings.Split(relPath, "/") {
		if g.Match(seg) {
			return true
		}
	}
	return false
}
