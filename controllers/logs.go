package controllers

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/services"

	"github.com/gofiber/fiber/v2"
)

type LogController struct {
	archive *services.LogArchiveService
}

func NewLogController(archive *services.LogArchiveService) *LogController {
	return &LogController{archive: archive}
}

// GetActivityLogs returns recent activity logs, paginated and newest first
func (lc *LogController) GetActivityLogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	query := database.DB.Model(&models.ActivityLog{})
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count logs",
		})
	}

	var logs []models.ActivityLog
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetArchivedLogs lists the log archives stored on S3
func (lc *LogController) GetArchivedLogs(c *fiber.Ctx) error {
	archives, err := lc.archive.GetArchivedLogs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch archived logs",
		})
	}

	return c.JSON(fiber.Map{"archives": archives})
}

// ArchiveLogs triggers an immediate archive of logs older than the given days
func (lc *LogController) ArchiveLogs(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)

	if err := lc.archive.ArchiveOldLogs(days); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Logs archived successfully"})
}
