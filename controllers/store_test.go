package controllers

import (
	"asistencia_go/config"
	"asistencia_go/database"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore points the global store at a throwaway SQLite file so
// handlers can be exercised through fiber's test transport.
func setupTestStore(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	config.AppConfig = &config.Config{
		DBPath:      filepath.Join(dir, "asistencia.db"),
		BackupDir:   filepath.Join(dir, "backups"),
		ReportDir:   filepath.Join(dir, "reports"),
		AppEnv:      "test",
		SkipMigrate: true,
	}

	db, err := gorm.Open(sqlite.Open(database.DSN(config.AppConfig.DBPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	database.DB = db
	database.RedisClient = nil
	database.AutoMigrate()
}
