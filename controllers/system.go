package controllers

import (
	"asistencia_go/middleware"
	"asistencia_go/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// SystemController exposes the reset/backup/restore lifecycle.
type SystemController struct {
	backups *services.BackupService
}

func NewSystemController() *SystemController {
	return &SystemController{backups: services.NewBackupService()}
}

// CredentialRequest carries the re-authentication password destructive
// operations demand
type CredentialRequest struct {
	Password string `json:"password" validate:"required"`
}

// Reset snapshots the store, then wipes every register entity. Accounts and
// activity logs survive.
func (syc *SystemController) Reset(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not authenticated",
		})
	}

	var req CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	snapshot, err := syc.backups.Reset(user, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Contraseña incorrecta",
			})
		}
		if errors.Is(err, services.ErrSnapshotFailed) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "No se pudo crear el backup, el sistema no fue reiniciado",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset system",
		})
	}

	middleware.LogActivity(c, "RESET", "system", 0, fiber.Map{
		"backup": snapshot,
	})

	return c.JSON(fiber.Map{
		"message": "Sistema reiniciado correctamente",
		"backup":  snapshot,
	})
}

// CreateBackup takes a snapshot without wiping anything
func (syc *SystemController) CreateBackup(c *fiber.Ctx) error {
	name, err := syc.backups.Snapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create backup",
		})
	}

	middleware.LogActivity(c, "CREATE", "backups", 0, fiber.Map{"backup": name})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Backup creado correctamente",
		"backup":  name,
	})
}

// ListBackups returns snapshot filenames, most recent first
func (syc *SystemController) ListBackups(c *fiber.Ctx) error {
	names, err := syc.backups.ListBackups()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list backups",
		})
	}

	return c.JSON(fiber.Map{"backups": names})
}

// Restore replaces the live store with the named snapshot. Sessions issued
// before the restore may reference accounts that no longer exist.
func (syc *SystemController) Restore(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not authenticated",
		})
	}

	var req CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	filename := c.Params("filename")
	if err := syc.backups.Restore(user, req.Password, filename); err != nil {
		if errors.Is(err, services.ErrInvalidCredential) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Contraseña incorrecta",
			})
		}
		if errors.Is(err, services.ErrSnapshotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Backup no encontrado",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to restore backup",
		})
	}

	middleware.LogActivity(c, "RESTORE", "system", 0, fiber.Map{
		"backup": filename,
	})

	return c.JSON(fiber.Map{
		"message": "Backup restaurado correctamente. Las sesiones activas pueden requerir un nuevo inicio de sesión.",
	})
}
