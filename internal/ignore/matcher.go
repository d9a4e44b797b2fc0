// Package ignore decides which paths a tree scan skips.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultSkipDirs are directory names pruned at any depth regardless of
// user patterns: tool/VCS metadata and build output.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	"build":        true,
	"dist":         true,
	"out":          true,
	".cache":       true,
	".vscode":      true,
	"node_modules": true,
	"vendor":       true,
}

// Matcher applies the default directory skips plus user-provided doublestar
// glob patterns matched against slash-separated paths relative to the scan
// root.
type Matcher struct {
	patterns []string
}

// NewMatcher builds a matcher from user exclude patterns. Invalid patterns
// are dropped.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(filepath.ToSlash(p))
		if p == "" || !doublestar.ValidatePattern(p) {
			continue
		}
		m.patterns = append(m.patterns, p)
	}
	return m
}

// ShouldIgnore reports whether relPath should be excluded from the scan.
// For directories a match prunes the whole subtree.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	rel := normalizePath(relPath)
	if rel == "" || rel == "." {
		return false
	}
	if isDir && defaultSkipDirs[filepath.Base(rel)] {
		return true
	}
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
