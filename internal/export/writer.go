package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter persists an export blob at a path relative to the export
// root, replacing any existing content.
type FileWriter interface {
	Write(path string, data []byte) error
}

// DiskWriter writes exports under a base directory on the local
// filesystem.
type DiskWriter struct {
	BaseDir string
}

func (w *DiskWriter) Write(path string, data []byte) error {
	full := filepath.Join(w.BaseDir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
