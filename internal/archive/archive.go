package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveOutput moves a previous export bundle to
// <parent>/archive/<name>-<timestamp> so a new run starts clean.
// A missing or empty directory is left alone and "" is returned.
func ArchiveOutput(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read output directory: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	cleanDir := filepath.Clean(outputDir)
	archiveDir := filepath.Join(filepath.Dir(cleanDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now()
	archivePath := archiveName(archiveDir, filepath.Base(cleanDir), now.Format("20060102-150405"))

	// Two runs within the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = archiveName(archiveDir, filepath.Base(cleanDir), now.Format("20060102-150405.000000"))
	}

	if err := os.Rename(cleanDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive output directory: %w", err)
	}

	return archivePath, nil
}

func archiveName(archiveDir, base, timestamp string) string {
	return filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, timestamp))
}
