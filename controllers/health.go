package controllers

import (
	"asistencia_go/services"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	health *services.HealthService
}

func NewHealthController(health *services.HealthService) *HealthController {
	return &HealthController{health: health}
}

// GetHealth returns the current health report; 503 when a critical dependency
// is down
func (hc *HealthController) GetHealth(c *fiber.Ctx) error {
	report := hc.health.GetHealthReport()
	return c.Status(hc.health.HTTPStatusForOverall(report.Status)).JSON(report)
}
