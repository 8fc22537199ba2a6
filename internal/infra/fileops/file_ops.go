// Where: cli/internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for config and credential files.
// Why: Keep whole-file writes consistent and never leave a half-written file behind.
package fileops

import (
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFileAtomic replaces path with data in one rename. Readers see either
// the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &os.PathError{Op: "write", Path: path, Err: os.ErrExist}
	}
	return atomicwriter.WriteFile(path, data, perm)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

