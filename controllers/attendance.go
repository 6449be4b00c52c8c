package controllers

import (
	"asistencia_go/middleware"
	"asistencia_go/services"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct{}

// AttendanceRequest represents the save request body. Estados maps student id
// to a status code (P, A or T).
type AttendanceRequest struct {
	SectionID uint            `json:"seccion" validate:"required"`
	Fecha     string          `json:"fecha"`
	Estados   map[uint]string `json:"estados" validate:"required"`
}

// GetRoster returns the grade/section/student options for the attendance screen
func (atc *AttendanceController) GetRoster(c *fiber.Ctx) error {
	gradeID := uint(c.QueryInt("grado"))
	sectionID := uint(c.QueryInt("seccion"))

	roster, err := services.GetRoster(gradeID, sectionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch roster",
		})
	}

	return c.JSON(roster)
}

// RecordAttendance saves one mark per listed student for the given date
func (atc *AttendanceController) RecordAttendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.SectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Seccion is required",
		})
	}

	fecha, err := services.ParseFecha(req.Fecha)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid fecha format, expected YYYY-MM-DD",
		})
	}

	saved, err := services.RecordAttendance(req.SectionID, fecha, req.Estados)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	middleware.LogActivity(c, "CREATE", "asistencias", req.SectionID, fiber.Map{
		"fecha":  fecha.Format("2006-01-02"),
		"marcas": saved,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Asistencia guardada",
		"marcas":  saved,
	})
}
