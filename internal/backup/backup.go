// Package backup manages file-level snapshots of the SQLite database. These
// are whole-file copies with a retention cap, separate from the JSON
// export/import path.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nwhitfield/daybook/internal/constants"
	"github.com/nwhitfield/daybook/internal/logger"
)

// SnapshotInfo describes one snapshot file on disk.
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, and restores snapshots next to the database file.
type Manager struct {
	dbPath      string
	snapshotDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:      dbPath,
		snapshotDir: filepath.Join(filepath.Dir(dbPath), constants.SnapshotDirName),
	}
}

func (m *Manager) SnapshotDir() string {
	return m.snapshotDir
}

// CreateSnapshot copies the database into the snapshot directory and rotates
// out snapshots beyond the retention cap.
func (m *Manager) CreateSnapshot() (string, error) {
	return m.createSnapshot(false)
}

func (m *Manager) createSnapshot(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.snapshotDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	path, err := m.uniquePath(time.Now())
	if err != nil {
		return "", err
	}
	if err := m.copyDatabase(path); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// An oversize snapshot dir is not worth failing the snapshot over
			logger.Warn("Failed to rotate old snapshots", "error", err)
		}
	}
	return path, nil
}

// uniquePath picks a timestamped filename, extending precision and finally
// appending a counter when snapshots collide within the same minute.
func (m *Manager) uniquePath(now time.Time) (string, error) {
	candidates := []string{
		now.Format("20060102-1504"),
		now.Format("20060102-150405"),
	}
	for _, stamp := range candidates {
		path := filepath.Join(m.snapshotDir, constants.SnapshotFilePrefix+stamp+constants.SnapshotFileSuffix)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	stamp := candidates[len(candidates)-1]
	for counter := 1; counter <= 100; counter++ {
		name := fmt.Sprintf("%s%s-%d%s", constants.SnapshotFilePrefix, stamp, counter, constants.SnapshotFileSuffix)
		path := filepath.Join(m.snapshotDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique snapshot filename")
}

// copyDatabase writes a clean copy of the live database via VACUUM INTO,
// falling back to a plain file copy on older SQLite versions.
func (m *Manager) copyDatabase(destPath string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// ListSnapshots returns all snapshots, newest first.
func (m *Manager) ListSnapshots() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.snapshotDir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.SnapshotFilePrefix) ||
			!strings.HasSuffix(name, constants.SnapshotFileSuffix) {
			continue
		}

		ts, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.SnapshotFilePrefix), constants.SnapshotFileSuffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.snapshotDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, SnapshotInfo{Path: path, Timestamp: ts, Size: info.Size()})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})
	return snapshots, nil
}

// parseStamp reads the timestamp portion of a snapshot filename, tolerating a
// trailing collision counter.
func parseStamp(s string) (time.Time, bool) {
	if parts := strings.Split(s, "-"); len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			s = strings.Join(parts[:len(parts)-1], "-")
		}
	}
	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (m *Manager) rotate() error {
	snapshots, err := m.ListSnapshots()
	if err != nil {
		return err
	}
	for i := constants.MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}
	return nil
}

// RestoreSnapshot replaces the live database with a snapshot. The current
// database is snapshotted first so the restore itself is recoverable.
func (m *Manager) RestoreSnapshot(snapshotPath string) error {
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot does not exist: %s", snapshotPath)
	}
	if err := verifySnapshot(snapshotPath); err != nil {
		return fmt.Errorf("snapshot is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		saved, err := m.createSnapshot(true)
		if err != nil {
			return fmt.Errorf("failed to snapshot current database before restore: %w", err)
		}
		logger.Info("Saved current database before restore", "snapshot", filepath.Base(saved))
	}

	// Copy then rename so a failed restore never leaves a half-written db
	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(snapshotPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func verifySnapshot(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
