package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apidex-dev/apidex/internal/ignore"
	"github.com/apidex-dev/apidex/internal/symbol"
)

var cExtensions = map[string]bool{
	".c":   true,
	".h":   true,
	".cc":  true,
	".cpp": true,
	".hpp": true,
}

// HasCExtension reports whether path names a C-like source or header file.
func HasCExtension(path string) bool {
	return cExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanTree walks the directory tree at root and returns the symbol table
// for one run. Unreadable files and directories are skipped, never fatal;
// files are visited in walk order so the table order is deterministic for a
// given tree.
func ScanTree(root string, matcher *ignore.Matcher) (*symbol.Table, error) {
	table := symbol.NewTable()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if matcher.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !HasCExtension(path) {
			return nil
		}
		ScanFile(path, filepath.ToSlash(rel), table)
		return nil
	})
	return table, err
}
