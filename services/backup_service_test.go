package services

import (
	"asistencia_go/config"
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/utils"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func seedOperator(t *testing.T, password string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username: "admin",
		Password: hashed,
		Role:     "owner",
		Status:   "active",
	}
	if err := database.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedPlanning(t *testing.T) {
	t.Helper()

	curso := models.Course{Nombre: "Comunicación"}
	if err := database.DB.Create(&curso).Error; err != nil {
		t.Fatalf("failed to seed curso: %v", err)
	}
	competencia := models.Competency{Nombre: "Se comunica oralmente", CourseID: curso.ID}
	if err := database.DB.Create(&competencia).Error; err != nil {
		t.Fatalf("failed to seed competencia: %v", err)
	}
	capacidad := models.Capability{Nombre: "Infiere información", CompetencyID: competencia.ID}
	if err := database.DB.Create(&capacidad).Error; err != nil {
		t.Fatalf("failed to seed capacidad: %v", err)
	}
}

func TestResetWrongPasswordChangesNothing(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)
	user := seedOperator(t, "secreto")
	before := countRows(t, &models.AttendanceMark{})

	bs := NewBackupService()

	_, err := bs.Reset(user, "equivocada")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("got error %v, want ErrInvalidCredential", err)
	}

	if got := countRows(t, &models.AttendanceMark{}); got != before {
		t.Errorf("mark count changed from %d to %d", before, got)
	}
	if names, _ := bs.ListBackups(); len(names) != 0 {
		t.Errorf("a snapshot was created on a failed credential check: %v", names)
	}
}

func TestResetWipesRegisterAndKeepsAccounts(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)
	seedPlanning(t)
	user := seedOperator(t, "secreto")

	bs := NewBackupService()

	snapshot, err := bs.Reset(user, "secreto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == "" {
		t.Fatal("expected a snapshot name")
	}

	// The snapshot exists on disk and is not empty
	info, err := os.Stat(filepath.Join(config.AppConfig.BackupDir, snapshot))
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("snapshot file is empty")
	}

	// Every register entity is gone
	for _, model := range []interface{}{
		&models.AttendanceMark{},
		&models.Student{},
		&models.Section{},
		&models.Grade{},
		&models.Capability{},
		&models.Competency{},
		&models.Course{},
	} {
		if got := countRows(t, model); got != 0 {
			t.Errorf("%T count = %d after reset, want 0", model, got)
		}
	}

	// Accounts survive the reset
	if got := countRows(t, &models.User{}); got != 1 {
		t.Errorf("user count = %d after reset, want 1", got)
	}
}

func TestResetThenRestoreRoundTrip(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)
	seedPlanning(t)
	user := seedOperator(t, "secreto")

	wantMarks := countRows(t, &models.AttendanceMark{})
	wantAlumnos := countRows(t, &models.Student{})

	bs := NewBackupService()

	snapshot, err := bs.Reset(user, "secreto")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if got := countRows(t, &models.AttendanceMark{}); got != 0 {
		t.Fatalf("mark count = %d after reset, want 0", got)
	}

	if err := bs.Restore(user, "secreto", snapshot); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if got := countRows(t, &models.AttendanceMark{}); got != wantMarks {
		t.Errorf("mark count = %d after restore, want %d", got, wantMarks)
	}
	if got := countRows(t, &models.Student{}); got != wantAlumnos {
		t.Errorf("alumno count = %d after restore, want %d", got, wantAlumnos)
	}
}

func TestRestoreRejectsUnknownOrPathlikeNames(t *testing.T) {
	setupTestStore(t)
	user := seedOperator(t, "secreto")

	bs := NewBackupService()

	cases := []string{
		"backup_2024-01-01_00-00-00.db", // never created
		"../asistencia.db",
		"notabackup.db",
		"",
	}
	for _, name := range cases {
		if err := bs.Restore(user, "secreto", name); !errors.Is(err, ErrSnapshotNotFound) {
			t.Errorf("Restore(%q) = %v, want ErrSnapshotNotFound", name, err)
		}
	}
}

func TestRestoreWrongPassword(t *testing.T) {
	setupTestStore(t)
	user := seedOperator(t, "secreto")

	bs := NewBackupService()
	if err := bs.Restore(user, "equivocada", "backup_x.db"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("got %v, want ErrInvalidCredential", err)
	}
}

func TestListBackupsOrderAndFiltering(t *testing.T) {
	setupTestStore(t)

	if err := os.MkdirAll(config.AppConfig.BackupDir, 0755); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	files := []string{
		"backup_2024-01-02_10-00-00.db",
		"backup_2024-03-01_08-30-00.db",
		"backup_2023-12-31_23-59-59.db",
		"unrelated.txt",
		"backup_partial.tmp",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(config.AppConfig.BackupDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	bs := NewBackupService()
	names, err := bs.ListBackups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"backup_2024-03-01_08-30-00.db",
		"backup_2024-01-02_10-00-00.db",
		"backup_2023-12-31_23-59-59.db",
	}
	if len(names) != len(want) {
		t.Fatalf("got %d backups, want %d: %v", len(names), len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestListBackupsWithoutDirectory(t *testing.T) {
	setupTestStore(t)

	bs := NewBackupService()
	names, err := bs.ListBackups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("got %d backups, want 0", len(names))
	}
}

func TestPruneBackups(t *testing.T) {
	setupTestStore(t)

	if err := os.MkdirAll(config.AppConfig.BackupDir, 0755); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	names := []string{
		"backup_2024-01-01_00-00-00.db",
		"backup_2024-01-02_00-00-00.db",
		"backup_2024-01-03_00-00-00.db",
		"backup_2024-01-04_00-00-00.db",
		"backup_2024-01-05_00-00-00.db",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(config.AppConfig.BackupDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	bs := NewBackupService()

	removed, err := bs.PruneBackups(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	left, _ := bs.ListBackups()
	want := []string{
		"backup_2024-01-05_00-00-00.db",
		"backup_2024-01-04_00-00-00.db",
	}
	if len(left) != 2 || left[0] != want[0] || left[1] != want[1] {
		t.Errorf("remaining backups = %v, want %v", left, want)
	}

	// A second prune is a no-op
	removed, err = bs.PruneBackups(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d on second prune, want 0", removed)
	}

	if _, err := bs.PruneBackups(0); err == nil {
		t.Error("expected error for zero retention")
	}
}
