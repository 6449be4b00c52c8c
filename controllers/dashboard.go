package controllers

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	backups *services.BackupService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{backups: services.NewBackupService()}
}

// GetStats returns the entity totals and the available snapshots for the
// admin dashboard
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	counts := map[string]*int64{
		"grados":       new(int64),
		"secciones":    new(int64),
		"alumnos":      new(int64),
		"asistencias":  new(int64),
		"cursos":       new(int64),
		"competencias": new(int64),
		"capacidades":  new(int64),
	}

	queries := []struct {
		key   string
		model interface{}
	}{
		{"grados", &models.Grade{}},
		{"secciones", &models.Section{}},
		{"alumnos", &models.Student{}},
		{"asistencias", &models.AttendanceMark{}},
		{"cursos", &models.Course{}},
		{"competencias", &models.Competency{}},
		{"capacidades", &models.Capability{}},
	}

	for _, q := range queries {
		if err := database.DB.Model(q.model).Count(counts[q.key]).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to compute stats",
			})
		}
	}

	backups, err := dc.backups.ListBackups()
	if err != nil {
		backups = []string{}
	}

	return c.JSON(fiber.Map{
		"totales": fiber.Map{
			"grados":       *counts["grados"],
			"secciones":    *counts["secciones"],
			"alumnos":      *counts["alumnos"],
			"asistencias":  *counts["asistencias"],
			"cursos":       *counts["cursos"],
			"competencias": *counts["competencias"],
			"capacidades":  *counts["capacidades"],
		},
		"backups": backups,
	})
}
