package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/GitKaran4723/attendanceModule/internal/auth"
	"github.com/GitKaran4723/attendanceModule/internal/config"
	"github.com/GitKaran4723/attendanceModule/internal/database"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/handler"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
	"github.com/GitKaran4723/attendanceModule/internal/service"
	"github.com/GitKaran4723/attendanceModule/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	jwtService := auth.NewJWTService(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	academicRepo := repository.NewAcademicRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	importRepo := repository.NewImportRepository(db)
	testRepo := repository.NewTestRepository(db)

	// Services
	diaryService := service.NewDiaryService(db, diaryRepo, attendanceRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, scheduleRepo, studentRepo, diaryService)
	importService := service.NewImportService(db, importRepo)
	dashboardService := service.NewDashboardService(diaryRepo, attendanceRepo, scheduleRepo, studentRepo, facultyRepo, academicRepo, testRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtService, db)

	authHandler := handler.NewAuthHandler(userRepo, authRepo, jwtService)
	diaryHandler := handler.NewDiaryHandler(diaryService, diaryRepo, authMiddleware, minioClient)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, authMiddleware)
	importHandler := handler.NewImportHandler(importService, importRepo, authMiddleware, minioClient, cfg)
	adminHandler := handler.NewAdminHandler(userRepo, facultyRepo, studentRepo, academicRepo, scheduleRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, authMiddleware, userRepo, studentRepo)
	testHandler := handler.NewTestHandler(testRepo, authMiddleware)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Import.MaxFileSizeMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INTERNAL_ERROR",
					"message": err.Error(),
				},
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authRoutes.Patch("/password", authMiddleware.Required(), authHandler.ChangePassword)

	// Attendance sessions
	facultyOnly := authMiddleware.RequireRoles(domain.RoleFaculty, domain.RoleHOD, domain.RoleAdmin)
	sessionRoutes := api.Group("/attendance/sessions", authMiddleware.Required())
	sessionRoutes.Post("/", facultyOnly, attendanceHandler.CreateSession)
	sessionRoutes.Get("/", facultyOnly, attendanceHandler.ListSessions)
	sessionRoutes.Get("/:id", facultyOnly, attendanceHandler.GetSession)
	sessionRoutes.Patch("/:id", facultyOnly, attendanceHandler.UpdateSession)
	sessionRoutes.Post("/:id/finalize", facultyOnly, attendanceHandler.FinalizeSession)

	// Campus check-in
	api.Post("/attendance/check-in", authMiddleware.Required(), attendanceHandler.CheckIn)
	api.Post("/attendance/check-out", authMiddleware.Required(), attendanceHandler.CheckOut)

	// Work diaries
	diaryRoutes := api.Group("/diaries", authMiddleware.Required())
	diaryRoutes.Get("/", diaryHandler.List)
	diaryRoutes.Post("/", facultyOnly, diaryHandler.Create)
	diaryRoutes.Get("/:id", diaryHandler.Get)
	diaryRoutes.Patch("/:id", facultyOnly, diaryHandler.Update)
	diaryRoutes.Post("/:id/submit", facultyOnly, diaryHandler.Submit)
	diaryRoutes.Post("/:id/approve", authMiddleware.RequireRoles(domain.RoleHOD, domain.RoleAdmin), diaryHandler.Approve)
	diaryRoutes.Post("/:id/reject", authMiddleware.RequireRoles(domain.RoleHOD, domain.RoleAdmin), diaryHandler.Reject)
	diaryRoutes.Delete("/:id", facultyOnly, diaryHandler.Delete)
	diaryRoutes.Post("/:id/attachment-url", facultyOnly, diaryHandler.AttachmentUploadURL)

	// Bulk imports
	importRoutes := api.Group("/imports", authMiddleware.Required(), authMiddleware.AdminOnly())
	importRoutes.Post("/:type", importHandler.Upload)
	importRoutes.Get("/logs", importHandler.ListLogs)
	importRoutes.Get("/logs/:id", importHandler.GetLog)
	importRoutes.Get("/templates/:type", importHandler.Template)

	// Dashboards
	dashboardRoutes := api.Group("/dashboard", authMiddleware.Required())
	dashboardRoutes.Get("/admin", authMiddleware.AdminOnly(), dashboardHandler.Admin)
	dashboardRoutes.Get("/faculty", facultyOnly, dashboardHandler.Faculty)
	dashboardRoutes.Get("/hod", authMiddleware.RequireRoles(domain.RoleHOD, domain.RoleAdmin), dashboardHandler.HOD)
	dashboardRoutes.Get("/student", dashboardHandler.Student)

	// Tests and results
	testRoutes := api.Group("/tests", authMiddleware.Required())
	testRoutes.Post("/", facultyOnly, testHandler.Create)
	testRoutes.Get("/", testHandler.ListBySection)
	testRoutes.Put("/:id/results", facultyOnly, testHandler.RecordResults)
	testRoutes.Get("/:id/results", facultyOnly, testHandler.ListResults)

	// Admin reference data
	adminRoutes := api.Group("/admin", authMiddleware.Required(), authMiddleware.AdminOnly())
	adminRoutes.Get("/faculty", adminHandler.ListFaculty)
	adminRoutes.Post("/faculty", adminHandler.CreateFaculty)
	adminRoutes.Patch("/faculty/:id", adminHandler.UpdateFaculty)
	adminRoutes.Delete("/faculty/:id", adminHandler.DeleteFaculty)
	adminRoutes.Get("/students", adminHandler.ListStudents)
	adminRoutes.Post("/students", adminHandler.CreateStudent)
	adminRoutes.Patch("/students/:id", adminHandler.UpdateStudent)
	adminRoutes.Delete("/students/:id", adminHandler.DeleteStudent)
	adminRoutes.Get("/programs", adminHandler.ListPrograms)
	adminRoutes.Post("/programs", adminHandler.CreateProgram)
	adminRoutes.Get("/sections", adminHandler.ListSections)
	adminRoutes.Post("/sections", adminHandler.CreateSection)
	adminRoutes.Get("/semesters", adminHandler.ListSemesters)
	adminRoutes.Post("/semesters", adminHandler.CreateSemester)
	adminRoutes.Get("/subjects", adminHandler.ListSubjects)
	adminRoutes.Post("/subjects", adminHandler.CreateSubject)
	adminRoutes.Delete("/subjects/:id", adminHandler.DeleteSubject)
	adminRoutes.Get("/allocations", adminHandler.ListAllocations)
	adminRoutes.Post("/allocations", adminHandler.CreateAllocation)
	adminRoutes.Get("/schedules", adminHandler.ListSchedules)
	adminRoutes.Post("/schedules", adminHandler.CreateSchedule)
	adminRoutes.Delete("/schedules/:id", adminHandler.DeleteSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
