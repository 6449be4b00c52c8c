package controllers

import (
	"asistencia_go/database"
	"asistencia_go/middleware"
	"asistencia_go/models"
	"asistencia_go/utils"

	"github.com/gofiber/fiber/v2"
)

type SectionController struct{}

// SectionRequest represents the create/update request body
type SectionRequest struct {
	Nombre  string `json:"nombre" validate:"required,max=10"`
	GradeID uint   `json:"grade_id" validate:"required"`
}

// GetSections returns sections, optionally filtered by grade
func (sc *SectionController) GetSections(c *fiber.Ctx) error {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	query := database.DB.Preload("Grade")
	if gradeID := c.QueryInt("grado"); gradeID > 0 {
		query = query.Where("grade_id = ?", gradeID)
	}

	var secciones []models.Section
	if err := query.Find(&secciones).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch secciones",
		})
	}

	return c.JSON(fiber.Map{"secciones": secciones})
}

// GetSection returns a single section with its students
func (sc *SectionController) GetSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid section ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var seccion models.Section
	if err := database.DB.Preload("Grade").Preload("Students").First(&seccion, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	return c.JSON(fiber.Map{"seccion": seccion})
}

// CreateSection creates a new section inside an existing grade
func (sc *SectionController) CreateSection(c *fiber.Ctx) error {
	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Nombre == "" || req.GradeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre and grade_id are required",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grado models.Grade
	if err := database.DB.First(&grado, req.GradeID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Grade not found",
		})
	}

	seccion := models.Section{
		Nombre:  utils.SanitizeString(req.Nombre),
		GradeID: req.GradeID,
	}
	if err := database.DB.Create(&seccion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create section",
		})
	}

	middleware.LogActivity(c, "CREATE", "secciones", seccion.ID, fiber.Map{
		"nombre": seccion.Nombre,
		"grado":  grado.Nombre,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Section created successfully",
		"seccion": seccion,
	})
}

// UpdateSection updates a section's name or moves it to another grade
func (sc *SectionController) UpdateSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid section ID",
		})
	}

	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var seccion models.Section
	if err := database.DB.First(&seccion, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	if req.Nombre != "" {
		seccion.Nombre = utils.SanitizeString(req.Nombre)
	}
	if req.GradeID != 0 {
		var grado models.Grade
		if err := database.DB.First(&grado, req.GradeID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Grade not found",
			})
		}
		seccion.GradeID = req.GradeID
	}

	if err := database.DB.Save(&seccion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update section",
		})
	}

	middleware.LogActivity(c, "UPDATE", "secciones", seccion.ID, fiber.Map{
		"nombre": seccion.Nombre,
	})

	return c.JSON(fiber.Map{
		"message": "Section updated successfully",
		"seccion": seccion,
	})
}

// DeleteSection deletes a section and its students
func (sc *SectionController) DeleteSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid section ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var seccion models.Section
	if err := database.DB.First(&seccion, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	if err := database.DB.Unscoped().Delete(&seccion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete section",
		})
	}

	middleware.LogActivity(c, "DELETE", "secciones", seccion.ID, fiber.Map{
		"nombre": seccion.Nombre,
	})

	return c.JSON(fiber.Map{"message": "Section deleted successfully"})
}
