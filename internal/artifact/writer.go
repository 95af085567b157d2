// Package artifact persists the rendered card to its well-known path.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Write stores data at path, creating parent directories as needed. It
// returns false without touching the file when the existing artifact already
// has identical content, so callers (and the external scheduler's commit
// step) can detect no-op runs.
func Write(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write artifact: %w", err)
	}
	return true, nil
}
