package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Backup creates <dir>/<prefix>-<timestamp><ext> and fills it via write.
// A half written file is removed on error. Returns the backup path.
func Backup(dir, prefix, ext string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, timestamp, ext))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(backupPath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		backupPath = filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, timestamp, ext))
	}

	f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(backupPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}

	return backupPath, nil
}

// DefaultDir returns the archive directory next to the file at path
func DefaultDir(path string) string {
	return filepath.Join(filepath.Dir(path), "archive")
}
