package routes

import (
	"asistencia_go/controllers"
	"asistencia_go/middleware"
	"asistencia_go/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, logArchive *services.LogArchiveService) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	gradeController := &controllers.GradeController{}
	sectionController := &controllers.SectionController{}
	studentController := &controllers.StudentController{}
	attendanceController := &controllers.AttendanceController{}
	planningController := &controllers.PlanningController{}
	reportController := controllers.NewReportController()
	systemController := controllers.NewSystemController()
	dashboardController := controllers.NewDashboardController()
	logController := controllers.NewLogController(logArchive)
	healthController := controllers.NewHealthController(services.NewHealthService("", ""))

	// API group
	api := app.Group("/api")

	// Health (no authentication required)
	api.Get("/health", healthController.GetHealth)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// User management (admin/owner only)
	users := protected.Group("/users", middleware.RequireOwnerOrAdmin())
	users.Post("/", authController.Register)

	// Register structure
	grados := protected.Group("/grados")
	grados.Get("/", gradeController.GetGrades)
	grados.Get("/:id", gradeController.GetGrade)
	grados.Post("/", middleware.RequireOwnerOrAdmin(), gradeController.CreateGrade)
	grados.Put("/:id", middleware.RequireOwnerOrAdmin(), gradeController.UpdateGrade)
	grados.Delete("/:id", middleware.RequireOwnerOrAdmin(), gradeController.DeleteGrade)

	secciones := protected.Group("/secciones")
	secciones.Get("/", sectionController.GetSections)
	secciones.Get("/:id", sectionController.GetSection)
	secciones.Post("/", middleware.RequireOwnerOrAdmin(), sectionController.CreateSection)
	secciones.Put("/:id", middleware.RequireOwnerOrAdmin(), sectionController.UpdateSection)
	secciones.Delete("/:id", middleware.RequireOwnerOrAdmin(), sectionController.DeleteSection)

	alumnos := protected.Group("/alumnos")
	alumnos.Get("/", studentController.GetStudents)
	alumnos.Get("/:id", studentController.GetStudent)
	alumnos.Post("/", studentController.CreateStudent)
	alumnos.Put("/:id", studentController.UpdateStudent)
	alumnos.Post("/:id/foto", studentController.UploadPhoto)
	alumnos.Delete("/:id", middleware.RequireOwnerOrAdmin(), studentController.DeleteStudent)

	// Attendance taking
	asistencia := protected.Group("/asistencia", middleware.RequireCapability("register:write"))
	asistencia.Get("/", attendanceController.GetRoster)
	asistencia.Post("/", attendanceController.RecordAttendance)

	// Reporting
	reportes := protected.Group("/reportes", middleware.RequireCapability("register:read"))
	reportes.Get("/", reportController.GetReport)
	reportes.Get("/export", reportController.DownloadReport)

	// Academic planning tree
	cursos := protected.Group("/cursos")
	cursos.Get("/", planningController.GetCourses)
	cursos.Get("/:id", planningController.GetCourse)
	cursos.Post("/", planningController.CreateCourse)
	cursos.Put("/:id", planningController.UpdateCourse)
	cursos.Delete("/:id", planningController.DeleteCourse)

	competencias := protected.Group("/competencias")
	competencias.Post("/", planningController.CreateCompetency)
	competencias.Put("/:id", planningController.UpdateCompetency)
	competencias.Delete("/:id", planningController.DeleteCompetency)

	capacidades := protected.Group("/capacidades")
	capacidades.Post("/", planningController.CreateCapability)
	capacidades.Put("/:id", planningController.UpdateCapability)
	capacidades.Delete("/:id", planningController.DeleteCapability)

	// Dashboard
	protected.Get("/dashboard", dashboardController.GetStats)

	// System lifecycle, capability gated
	sistema := protected.Group("/sistema")
	sistema.Post("/reset", middleware.RequireCapability("system:reset"), systemController.Reset)
	sistema.Get("/backups", middleware.RequireOwnerOrAdmin(), systemController.ListBackups)
	sistema.Post("/backups", middleware.RequireOwnerOrAdmin(), systemController.CreateBackup)
	sistema.Post("/restore/:filename", middleware.RequireCapability("system:restore"), systemController.Restore)

	// Activity logs (admin/owner only)
	logs := protected.Group("/logs", middleware.RequireOwnerOrAdmin())
	logs.Get("/", logController.GetActivityLogs)
	logs.Get("/archives", logController.GetArchivedLogs)
	logs.Post("/archive", logController.ArchiveLogs)
}
