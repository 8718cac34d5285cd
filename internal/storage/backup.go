package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const backupTimeFormat = "20060102_150405"

// BackupManager keeps copies of deck files before they are rewritten
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a backup manager writing to dir. An empty dir
// means the default backup directory.
func NewBackupManager(dir string) (*BackupManager, error) {
	if dir == "" {
		dir = GetBackupDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
	}, nil
}

// CreateBackup copies the file at path into the backup directory and returns
// the path of the copy
func (bm *BackupManager) CreateBackup(path string) (string, error) {
	return bm.createBackup(path, time.Now())
}

func (bm *BackupManager) createBackup(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file for backup: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, backupFilename(path, now))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// backupFilename creates a filename in the format YYYYMMDD_HHMMSS_<name>
func backupFilename(path string, now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format(backupTimeFormat), filepath.Base(path))
}

// GetBackupDir returns the default backup directory
func GetBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "code-wave", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "code-wave", "backups")
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath  string    // Full path to backup file
	Timestamp time.Time // Parsed timestamp from filename
	Name      string    // Base name of the original file
}

// FindBackupsForFile returns the backups of files named like path, oldest first
func (bm *BackupManager) FindBackupsForFile(path string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	name := filepath.Base(path)
	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil || metadata.Name != name {
			continue
		}
		backups = append(backups, metadata)
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return backups, nil
}

// parseBackupFilename extracts metadata from a backup filename
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	if len(filename) < len(backupTimeFormat)+2 || filename[len(backupTimeFormat)] != '_' {
		return BackupMetadata{}, fmt.Errorf("not a backup filename: %q", filename)
	}

	timestamp, err := time.ParseInLocation(backupTimeFormat, filename[:len(backupTimeFormat)], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	return BackupMetadata{
		FilePath:  fullPath,
		Timestamp: timestamp,
		Name:      strings.TrimPrefix(filename[len(backupTimeFormat):], "_"),
	}, nil
}
