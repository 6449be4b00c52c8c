package controllers

import (
	"asistencia_go/middleware"
	"asistencia_go/services"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController() *ReportController {
	return &ReportController{reports: services.NewReportService()}
}

func reportFiltersFromQuery(c *fiber.Ctx) services.ReportFilters {
	return services.ReportFilters{
		Fecha:     c.Query("fecha"),
		Tipo:      c.Query("tipo", "dia"),
		GradeID:   uint(c.QueryInt("grado")),
		SectionID: uint(c.QueryInt("seccion")),
		DNI:       c.Query("dni"),
	}
}

// GetReport returns the on-screen attendance report, most recent first
func (rc *ReportController) GetReport(c *fiber.Ctx) error {
	filters := reportFiltersFromQuery(c)

	report, err := rc.reports.BuildScreenReport(filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFecha) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logrus.WithError(err).Error("Failed to build attendance report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	return c.JSON(report)
}

// DownloadReport builds the printable attendance document and sends it as a
// file download
func (rc *ReportController) DownloadReport(c *fiber.Ctx) error {
	filters := reportFiltersFromQuery(c)

	data, err := rc.reports.CollectPrintable(filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFecha) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logrus.WithError(err).Error("Failed to collect printable report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	header := services.PrintableHeader{
		Profesora: c.Query("profesora"),
		DNIProf:   c.Query("dni_profesora"),
		Curso:     c.Query("curso"),
	}
	if header.Profesora == "" {
		if user, err := middleware.GetCurrentUser(c); err == nil {
			header.Profesora = user.Username
		}
	}

	path, filename, err := services.ExportPrintableReport(data, header)
	if err != nil {
		logrus.WithError(err).Error("Failed to export printable report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report file",
		})
	}

	middleware.LogActivity(c, "EXPORT", "reportes", 0, fiber.Map{
		"tipo":      filters.Tipo,
		"registros": data.Total,
	})

	return c.Download(path, filename)
}
