package services

import (
	"asistencia_go/config"
	"asistencia_go/database"
	"asistencia_go/models"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore points the global store at a throwaway SQLite file and
// migrates the schema. Backup and report directories live in the same temp
// tree so snapshot tests exercise real file copies.
func setupTestStore(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	config.AppConfig = &config.Config{
		DBPath:          filepath.Join(dir, "asistencia.db"),
		BackupDir:       filepath.Join(dir, "backups"),
		ReportDir:       filepath.Join(dir, "reports"),
		RetainedBackups: 3,
		AppEnv:          "test",
		SkipMigrate:     true,
	}

	db, err := gorm.Open(sqlite.Open(database.DSN(config.AppConfig.DBPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	database.DB = db
	database.AutoMigrate()
}

type fixture struct {
	Grado    models.Grade
	SeccionA models.Section
	SeccionB models.Section
	Ana      models.Student
	Rosa     models.Student
	Luis     models.Student
}

// seedFixture builds one grade with two sections and a handful of marks:
//
//	Ana  (dni 11111111, seccion A): P on 2024-03-04, T on 2024-03-06
//	Rosa (dni 22222222, seccion A): A on 2024-03-06
//	Luis (dni 33333333, seccion B): P on 2024-03-06
func seedFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{Grado: models.Grade{Nombre: "5to Grado"}}
	if err := database.DB.Create(&f.Grado).Error; err != nil {
		t.Fatalf("failed to seed grado: %v", err)
	}

	f.SeccionA = models.Section{Nombre: "A", GradeID: f.Grado.ID}
	f.SeccionB = models.Section{Nombre: "B", GradeID: f.Grado.ID}
	for _, s := range []*models.Section{&f.SeccionA, &f.SeccionB} {
		if err := database.DB.Create(s).Error; err != nil {
			t.Fatalf("failed to seed seccion: %v", err)
		}
	}

	f.Ana = models.Student{Nombre: "Ana Quispe", DNI: "11111111", SectionID: f.SeccionA.ID}
	f.Rosa = models.Student{Nombre: "Rosa Mamani", DNI: "22222222", SectionID: f.SeccionA.ID}
	f.Luis = models.Student{Nombre: "Luis Huamán", DNI: "33333333", SectionID: f.SeccionB.ID}
	for _, a := range []*models.Student{&f.Ana, &f.Rosa, &f.Luis} {
		if err := database.DB.Create(a).Error; err != nil {
			t.Fatalf("failed to seed alumno: %v", err)
		}
	}

	marks := []models.AttendanceMark{
		{Fecha: date(2024, 3, 4), Estado: "P", StudentID: f.Ana.ID},
		{Fecha: date(2024, 3, 6), Estado: "T", StudentID: f.Ana.ID},
		{Fecha: date(2024, 3, 6), Estado: "A", StudentID: f.Rosa.ID},
		{Fecha: date(2024, 3, 6), Estado: "P", StudentID: f.Luis.ID},
	}
	for i := range marks {
		if err := database.DB.Create(&marks[i]).Error; err != nil {
			t.Fatalf("failed to seed marca: %v", err)
		}
	}

	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count %T: %v", model, err)
	}
	return n
}
