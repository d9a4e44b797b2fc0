package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating missing parent directories first.
// Failure to create a directory or write the file is fatal to the caller's
// operation.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
