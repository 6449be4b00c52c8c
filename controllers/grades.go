package controllers

import (
	"asistencia_go/database"
	"asistencia_go/middleware"
	"asistencia_go/models"
	"asistencia_go/utils"

	"github.com/gofiber/fiber/v2"
)

type GradeController struct{}

// GradeRequest represents the create/update request body
type GradeRequest struct {
	Nombre string `json:"nombre" validate:"required,max=50"`
}

// GetGrades returns all grades with their sections
func (gc *GradeController) GetGrades(c *fiber.Ctx) error {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grados []models.Grade
	if err := database.DB.Preload("Sections").Find(&grados).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grados",
		})
	}

	return c.JSON(fiber.Map{"grados": grados})
}

// GetGrade returns a single grade with sections and student counts
func (gc *GradeController) GetGrade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grado models.Grade
	if err := database.DB.Preload("Sections.Students").First(&grado, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	return c.JSON(fiber.Map{"grado": grado})
}

// CreateGrade creates a new grade
func (gc *GradeController) CreateGrade(c *fiber.Ctx) error {
	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre is required",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	grado := models.Grade{Nombre: utils.SanitizeString(req.Nombre)}
	if err := database.DB.Create(&grado).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create grade",
		})
	}

	middleware.LogActivity(c, "CREATE", "grados", grado.ID, fiber.Map{
		"nombre": grado.Nombre,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Grade created successfully",
		"grado":   grado,
	})
}

// UpdateGrade updates a grade's name
func (gc *GradeController) UpdateGrade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade ID",
		})
	}

	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grado models.Grade
	if err := database.DB.First(&grado, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	grado.Nombre = utils.SanitizeString(req.Nombre)
	if err := database.DB.Save(&grado).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update grade",
		})
	}

	middleware.LogActivity(c, "UPDATE", "grados", grado.ID, fiber.Map{
		"nombre": grado.Nombre,
	})

	return c.JSON(fiber.Map{
		"message": "Grade updated successfully",
		"grado":   grado,
	})
}

// DeleteGrade deletes a grade and, through the cascade, its sections,
// students and marks
func (gc *GradeController) DeleteGrade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid grade ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grado models.Grade
	if err := database.DB.First(&grado, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	if err := database.DB.Unscoped().Delete(&grado).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete grade",
		})
	}

	middleware.LogActivity(c, "DELETE", "grados", grado.ID, fiber.Map{
		"nombre": grado.Nombre,
	})

	return c.JSON(fiber.Map{"message": "Grade deleted successfully"})
}
