package controllers

import (
	"asistencia_go/config"
	"asistencia_go/database"
	"asistencia_go/middleware"
	"asistencia_go/models"
	"asistencia_go/storage"
	"asistencia_go/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type StudentController struct{}

// StudentRequest represents the create/update request body
type StudentRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=100"`
	DNI       string `json:"dni" validate:"max=15"`
	SectionID uint   `json:"section_id" validate:"required"`
}

// GetStudents returns students, optionally filtered by section or DNI substring
func (stc *StudentController) GetStudents(c *fiber.Ctx) error {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	query := database.DB.Preload("Section.Grade")
	if sectionID := c.QueryInt("seccion"); sectionID > 0 {
		query = query.Where("section_id = ?", sectionID)
	}
	if dni := c.Query("dni"); dni != "" {
		query = query.Where("dni LIKE ?", "%"+dni+"%")
	}

	var alumnos []models.Student
	if err := query.Find(&alumnos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch alumnos",
		})
	}

	return c.JSON(fiber.Map{"alumnos": alumnos})
}

// GetStudent returns a single student with section and marks
func (stc *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var alumno models.Student
	if err := database.DB.Preload("Section.Grade").Preload("Marks").First(&alumno, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	return c.JSON(fiber.Map{"alumno": alumno})
}

// CreateStudent creates a new student in an existing section
func (stc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Nombre == "" || req.SectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre and section_id are required",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var seccion models.Section
	if err := database.DB.First(&seccion, req.SectionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	alumno := models.Student{
		Nombre:    utils.SanitizeString(req.Nombre),
		DNI:       utils.SanitizeString(req.DNI),
		SectionID: req.SectionID,
	}
	if err := database.DB.Create(&alumno).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create student",
		})
	}

	middleware.LogActivity(c, "CREATE", "alumnos", alumno.ID, fiber.Map{
		"nombre": alumno.Nombre,
		"dni":    alumno.DNI,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created successfully",
		"alumno":  alumno,
	})
}

// UpdateStudent updates a student's fields
func (stc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var alumno models.Student
	if err := database.DB.First(&alumno, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	if req.Nombre != "" {
		alumno.Nombre = utils.SanitizeString(req.Nombre)
	}
	if req.DNI != "" {
		alumno.DNI = utils.SanitizeString(req.DNI)
	}
	if req.SectionID != 0 {
		var seccion models.Section
		if err := database.DB.First(&seccion, req.SectionID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Section not found",
			})
		}
		alumno.SectionID = req.SectionID
	}

	if err := database.DB.Save(&alumno).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update student",
		})
	}

	middleware.LogActivity(c, "UPDATE", "alumnos", alumno.ID, fiber.Map{
		"nombre": alumno.Nombre,
	})

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"alumno":  alumno,
	})
}

// UploadPhoto stores a student photo in S3 and saves its URL
func (stc *StudentController) UploadPhoto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	file, err := c.FormFile("foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No photo file provided",
		})
	}

	if !utils.IsValidFileExtension(file.Filename, strings.Split(config.AppConfig.AllowedExtensions, ",")) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File type not allowed",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var alumno models.Student
	if err := database.DB.First(&alumno, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Storage service unavailable",
		})
	}

	url, err := storageService.UploadPhoto(file, alumno.DNI)
	if err != nil {
		logrus.WithError(err).Error("Failed to upload student photo")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload photo",
		})
	}

	// Best effort cleanup of the replaced photo
	if alumno.FotoURL != "" {
		if err := storageService.DeletePhoto(alumno.FotoURL); err != nil {
			logrus.WithError(err).Warn("Failed to delete previous photo")
		}
	}

	alumno.FotoURL = url
	if err := database.DB.Save(&alumno).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save photo URL",
		})
	}

	middleware.LogActivity(c, "UPDATE", "alumnos", alumno.ID, fiber.Map{
		"action": "photo_upload",
	})

	return c.JSON(fiber.Map{
		"message":  "Photo uploaded successfully",
		"foto_url": url,
	})
}

// DeleteStudent deletes a student and their marks
func (stc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var alumno models.Student
	if err := database.DB.First(&alumno, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	if err := database.DB.Unscoped().Delete(&alumno).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}

	middleware.LogActivity(c, "DELETE", "alumnos", alumno.ID, fiber.Map{
		"nombre": alumno.Nombre,
	})

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}
