package controllers

import (
	"asistencia_go/database"
	"asistencia_go/middleware"
	"asistencia_go/models"
	"asistencia_go/utils"

	"github.com/gofiber/fiber/v2"
)

// PlanningController manages the Course → Competency → Capability tree.
type PlanningController struct{}

// NamedRequest is the shared create/update body for planning nodes
type NamedRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=200"`
	CourseID     uint   `json:"course_id"`
	CompetencyID uint   `json:"competency_id"`
}

// GetCourses returns all courses with their full planning tree
func (pc *PlanningController) GetCourses(c *fiber.Ctx) error {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var cursos []models.Course
	if err := database.DB.Preload("Competencies.Capabilities").Find(&cursos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cursos",
		})
	}

	return c.JSON(fiber.Map{"cursos": cursos})
}

// GetCourse returns one course with its competencies and capabilities
func (pc *PlanningController) GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var curso models.Course
	if err := database.DB.Preload("Competencies.Capabilities").First(&curso, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(fiber.Map{"curso": curso})
}

// CreateCourse creates a new course
func (pc *PlanningController) CreateCourse(c *fiber.Ctx) error {
	var req NamedRequest
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

	curso := models.Course{Nombre: utils.SanitizeString(req.Nombre)}
	if err := database.DB.Create(&curso).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create course",
		})
	}

	middleware.LogActivity(c, "CREATE", "cursos", curso.ID, fiber.Map{"nombre": curso.Nombre})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"curso":   curso,
	})
}

// UpdateCourse renames a course
func (pc *PlanningController) UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var curso models.Course
	if err := database.DB.First(&curso, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	curso.Nombre = utils.SanitizeString(req.Nombre)
	if err := database.DB.Save(&curso).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	middleware.LogActivity(c, "UPDATE", "cursos", curso.ID, fiber.Map{"nombre": curso.Nombre})

	return c.JSON(fiber.Map{"message": "Course updated successfully", "curso": curso})
}

// DeleteCourse deletes a course and its whole planning subtree
func (pc *PlanningController) DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var curso models.Course
	if err := database.DB.First(&curso, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	if err := database.DB.Unscoped().Delete(&curso).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}

	middleware.LogActivity(c, "DELETE", "cursos", curso.ID, fiber.Map{"nombre": curso.Nombre})

	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

// CreateCompetency creates a competency under an existing course
func (pc *PlanningController) CreateCompetency(c *fiber.Ctx) error {
	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Nombre == "" || req.CourseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre and course_id are required",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var curso models.Course
	if err := database.DB.First(&curso, req.CourseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	competencia := models.Competency{
		Nombre:   utils.SanitizeString(req.Nombre),
		CourseID: req.CourseID,
	}
	if err := database.DB.Create(&competencia).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create competency"})
	}

	middleware.LogActivity(c, "CREATE", "competencias", competencia.ID, fiber.Map{
		"nombre": competencia.Nombre,
		"curso":  curso.Nombre,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Competency created successfully",
		"competencia": competencia,
	})
}

// UpdateCompetency renames a competency
func (pc *PlanningController) UpdateCompetency(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid competency ID"})
	}

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var competencia models.Competency
	if err := database.DB.First(&competencia, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Competency not found"})
	}

	competencia.Nombre = utils.SanitizeString(req.Nombre)
	if err := database.DB.Save(&competencia).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update competency"})
	}

	middleware.LogActivity(c, "UPDATE", "competencias", competencia.ID, fiber.Map{"nombre": competencia.Nombre})

	return c.JSON(fiber.Map{"message": "Competency updated successfully", "competencia": competencia})
}

// DeleteCompetency deletes a competency and its capabilities
func (pc *PlanningController) DeleteCompetency(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid competency ID"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var competencia models.Competency
	if err := database.DB.First(&competencia, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Competency not found"})
	}

	if err := database.DB.Unscoped().Delete(&competencia).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete competency"})
	}

	middleware.LogActivity(c, "DELETE", "competencias", competencia.ID, fiber.Map{"nombre": competencia.Nombre})

	return c.JSON(fiber.Map{"message": "Competency deleted successfully"})
}

// CreateCapability creates a capability under an existing competency
func (pc *PlanningController) CreateCapability(c *fiber.Ctx) error {
	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Nombre == "" || req.CompetencyID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nombre and competency_id are required",
		})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var competencia models.Competency
	if err := database.DB.First(&competencia, req.CompetencyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Competency not found"})
	}

	capacidad := models.Capability{
		Nombre:       utils.SanitizeString(req.Nombre),
		CompetencyID: req.CompetencyID,
	}
	if err := database.DB.Create(&capacidad).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create capability"})
	}

	middleware.LogActivity(c, "CREATE", "capacidades", capacidad.ID, fiber.Map{
		"nombre":      capacidad.Nombre,
		"competencia": competencia.Nombre,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Capability created successfully",
		"capacidad": capacidad,
	})
}

// UpdateCapability renames a capability
func (pc *PlanningController) UpdateCapability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid capability ID"})
	}

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var capacidad models.Capability
	if err := database.DB.First(&capacidad, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Capability not found"})
	}

	capacidad.Nombre = utils.SanitizeString(req.Nombre)
	if err := database.DB.Save(&capacidad).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update capability"})
	}

	middleware.LogActivity(c, "UPDATE", "capacidades", capacidad.ID, fiber.Map{"nombre": capacidad.Nombre})

	return c.JSON(fiber.Map{"message": "Capability updated successfully", "capacidad": capacidad})
}

// DeleteCapability deletes a capability
func (pc *PlanningController) DeleteCapability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid capability ID"})
	}

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var capacidad models.Capability
	if err := database.DB.First(&capacidad, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Capability not found"})
	}

	if err := database.DB.Unscoped().Delete(&capacidad).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete capability"})
	}

	middleware.LogActivity(c, "DELETE", "capacidades", capacidad.ID, fiber.Map{"nombre": capacidad.Nombre})

	return c.JSON(fiber.Map{"message": "Capability deleted successfully"})
}
