package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DefaultDir returns the directory vocabulary database snapshots are kept in
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "vocabbuilder", "archive"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "vocabbuilder", "archive"), nil
}

// SnapshotDatabase copies the Kindle vocabulary database into archiveDir with
// a timestamp, so lookups survive the Kindle clearing its vocabulary builder.
// It returns the path of the snapshot.
func SnapshotDatabase(dbPath, archiveDir string) (string, error) {
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("vocabulary database does not exist: %s", dbPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat vocabulary database: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("vocabulary database is a directory: %s", dbPath)
	}

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("vocab-%s.db", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("vocab-%s.db", timestamp))
	}

	if err := copyFile(dbPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive vocabulary database: %w", err)
	}

	return archivePath, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return err
	}

	return dstFile.Close()
}
