package services

import (
	"asistencia_go/config"
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredential signals a failed re-authentication on a
	// destructive operation. No state has changed when it is returned.
	ErrInvalidCredential = errors.New("contraseña incorrecta")

	// ErrSnapshotNotFound signals a restore request for a snapshot that
	// does not exist.
	ErrSnapshotNotFound = errors.New("backup not found")

	// ErrSnapshotFailed signals that the pre-reset snapshot could not be
	// verified; the wipe is aborted.
	ErrSnapshotFailed = errors.New("backup snapshot could not be created")
)

const snapshotPrefix = "backup_"
const snapshotExt = ".db"

// BackupService owns the reset/backup/restore lifecycle of the store.
type BackupService struct{}

func NewBackupService() *BackupService {
	return &BackupService{}
}

// Reset snapshots the whole store and then erases every register entity.
// The caller's password is re-checked against their stored hash; the
// snapshot is verified on disk before any delete runs; the wipe itself is a
// single transaction, children before parents, so no reader ever observes a
// partially-wiped register.
func (bs *BackupService) Reset(user *models.User, password string) (string, error) {
	if err := utils.CheckPassword(password, user.Password); err != nil {
		return "", ErrInvalidCredential
	}

	database.StoreLock.Lock()
	defer database.StoreLock.Unlock()

	name, err := bs.snapshotLocked()
	if err != nil {
		return "", err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Children before parents; the store also cascades, but the
		// explicit order keeps the invariant independent of it.
		wipe := []interface{}{
			&models.AttendanceMark{},
			&models.Student{},
			&models.Capability{},
			&models.Competency{},
			&models.Course{},
			&models.Section{},
			&models.Grade{},
		}
		for _, model := range wipe {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to wipe %T: %w", model, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot": name,
		"user":     user.Username,
	}).Info("System reset completed")

	return name, nil
}

// Snapshot copies the live store file into the backup directory under a
// timestamp-sortable name and returns that name.
func (bs *BackupService) Snapshot() (string, error) {
	database.StoreLock.Lock()
	defer database.StoreLock.Unlock()
	return bs.snapshotLocked()
}

func (bs *BackupService) snapshotLocked() (string, error) {
	if err := os.MkdirAll(config.AppConfig.BackupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Fold the WAL into the main file so the copy is complete
	if err := database.Checkpoint(); err != nil {
		logrus.WithError(err).Warn("WAL checkpoint before snapshot failed")
	}

	name := fmt.Sprintf("%s%s%s", snapshotPrefix, time.Now().Format("2006-01-02_15-04-05"), snapshotExt)
	dst := filepath.Join(config.AppConfig.BackupDir, name)

	if err := copyFile(config.AppConfig.DBPath, dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshotFailed, err)
	}

	// Verify before anything destructive may follow
	info, err := os.Stat(dst)
	if err != nil || info.Size() == 0 {
		return "", ErrSnapshotFailed
	}

	return name, nil
}

// Restore overwrites the live store file with the named snapshot. The GORM
// pool is closed for the copy and reopened afterward; callers should warn the
// operator that existing sessions may reference wiped accounts.
func (bs *BackupService) Restore(user *models.User, password, filename string) error {
	if err := utils.CheckPassword(password, user.Password); err != nil {
		return ErrInvalidCredential
	}

	// Exact filename addressing only; reject anything path-like
	if filename != filepath.Base(filename) || !strings.HasPrefix(filename, snapshotPrefix) {
		return ErrSnapshotNotFound
	}
	src := filepath.Join(config.AppConfig.BackupDir, filename)
	if _, err := os.Stat(src); err != nil {
		return ErrSnapshotNotFound
	}

	database.StoreLock.Lock()
	defer database.StoreLock.Unlock()

	if err := database.Close(); err != nil {
		return fmt.Errorf("failed to close store before restore: %w", err)
	}

	// Stale WAL/SHM files would shadow the restored content
	os.Remove(config.AppConfig.DBPath + "-wal")
	os.Remove(config.AppConfig.DBPath + "-shm")

	copyErr := copyFile(src, config.AppConfig.DBPath)

	database.Reopen()

	if copyErr != nil {
		return fmt.Errorf("failed to restore snapshot %s: %w", filename, copyErr)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot": filename,
		"user":     user.Username,
	}).Info("Snapshot restored")

	return nil
}

// ListBackups returns snapshot filenames, most recent first. The timestamped
// naming makes lexical order chronological.
func (bs *BackupService) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(config.AppConfig.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), snapshotPrefix) && strings.HasSuffix(e.Name(), snapshotExt) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// PruneBackups deletes the oldest snapshots beyond the retention count and
// returns how many were removed.
func (bs *BackupService) PruneBackups(retain int) (int, error) {
	if retain < 1 {
		return 0, fmt.Errorf("retention must be at least 1")
	}

	names, err := bs.ListBackups()
	if err != nil {
		return 0, err
	}
	if len(names) <= retain {
		return 0, nil
	}

	removed := 0
	for _, name := range names[retain:] {
		if err := os.Remove(filepath.Join(config.AppConfig.BackupDir, name)); err != nil {
			logrus.WithError(err).Warnf("Failed to prune backup %s", name)
			continue
		}
		removed++
	}
	return removed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
