package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuskit/portal-api/database"
	"github.com/campuskit/portal-api/handlers"
	admin_handlers "github.com/campuskit/portal-api/handlers/admin"
	auth_handlers "github.com/campuskit/portal-api/handlers/auth"
	faculty_handlers "github.com/campuskit/portal-api/handlers/faculty"
	notice_handlers "github.com/campuskit/portal-api/handlers/notice"
	resource_handlers "github.com/campuskit/portal-api/handlers/resource"
	student_handlers "github.com/campuskit/portal-api/handlers/student"
	"github.com/campuskit/portal-api/services"
	"github.com/campuskit/portal-api/services/storage"
	"github.com/campuskit/portal-api/utils/auth"
	"github.com/campuskit/portal-api/utils/cache"
	"github.com/campuskit/portal-api/utils/middleware"
)

// SetupRoutes wires every endpoint. rawStore powers the admin dashboard and
// may be nil; objectStore powers document endpoints and may be nil, in which
// case those routes are not mounted.
func SetupRoutes(app *fiber.App, store database.Storage, rawStore *database.PostgreSQLStore, objectStore *storage.ObjectStore) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campuskit-portal-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs login lockouts; without it, login still works.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForce *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForce = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForce)
	adminHandler := admin_handlers.NewAdminHandler(db, rawStore)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	studentHandler := student_handlers.NewStudentHandler(db)
	noticeHandler := notice_handlers.NewNoticeHandler(db)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	if bruteForce != nil {
		authGroup.Post("/login", bruteForce.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/dashboard", adminHandler.Dashboard)

	admin.Post("/students", adminHandler.EnrollStudent)
	admin.Get("/students", adminHandler.ListStudents)
	admin.Put("/students/:id", adminHandler.UpdateStudent)
	admin.Post("/faculty", adminHandler.EnrollFaculty)
	admin.Get("/faculty", adminHandler.ListFaculty)
	admin.Post("/users/:id/deactivate", adminHandler.DeactivateUser)

	admin.Post("/subjects", adminHandler.CreateSubject)
	admin.Get("/subjects", adminHandler.ListSubjects)
	admin.Put("/subjects/:id", adminHandler.UpdateSubject)
	admin.Delete("/subjects/:id", adminHandler.DeleteSubject)

	admin.Post("/allocations", adminHandler.AllocateSubject)
	admin.Get("/allocations", adminHandler.ListAllocations)
	admin.Delete("/allocations/:id", adminHandler.DeleteAllocation)

	admin.Post("/extra-courses", adminHandler.AddExtraCourse)
	admin.Delete("/extra-courses", adminHandler.RemoveExtraCourse)

	admin.Post("/timetable-slots", adminHandler.CreateTimetableSlot)
	admin.Delete("/timetable-slots/:id", adminHandler.DeleteTimetableSlot)

	admin.Post("/students/:id/payments", adminHandler.RecordPayment)
	admin.Put("/students/:id/fees", adminHandler.SetTotalFee)
	admin.Get("/students/:id/fees", adminHandler.FeeStatus)
	admin.Get("/fees/pending", adminHandler.PendingFees)

	admin.Post("/results/import", adminHandler.ImportResultLedger)

	// Faculty routes
	faculty := api.Group("/faculty", authMiddleware.RequireFaculty())
	faculty.Get("/profile", facultyHandler.MyProfile)
	faculty.Get("/subjects", facultyHandler.MySubjects)
	faculty.Get("/timetable", facultyHandler.MyTimetable)
	faculty.Get("/allocations/:allocationId/roster", facultyHandler.Roster)
	faculty.Post("/allocations/:allocationId/attendance", facultyHandler.SubmitAttendance)
	faculty.Get("/allocations/:allocationId/report", facultyHandler.AttendanceReport)
	faculty.Get("/allocations/:allocationId/report/download", facultyHandler.DownloadAttendanceReport)
	faculty.Post("/allocations/:allocationId/assessments", facultyHandler.CreateAssessment)
	faculty.Get("/allocations/:allocationId/assessments", facultyHandler.ListAssessments)
	faculty.Post("/allocations/:allocationId/assessments/:assessmentId/marks", facultyHandler.RecordMarks)
	faculty.Post("/marks", facultyHandler.SubmitMarks)
	faculty.Get("/students/:studentId/profile", facultyHandler.StudentProfile)

	// Student routes
	student := api.Group("/student", authMiddleware.RequireStudent())
	student.Get("/attendance", studentHandler.MyAttendance)
	student.Get("/report-card", studentHandler.ReportCard)
	student.Get("/results", studentHandler.MyResults)
	student.Get("/assessments", studentHandler.MyAssessments)
	student.Get("/profile", studentHandler.Profile)
	student.Get("/fees", studentHandler.MyFees)
	student.Get("/timetable", studentHandler.MyTimetable)

	// Notice board
	notices := api.Group("/notices", authMiddleware.Required())
	notices.Get("/", noticeHandler.List)
	notices.Post("/", authMiddleware.RequireAdmin(), noticeHandler.Post)
	notices.Delete("/:id", authMiddleware.RequireAdmin(), noticeHandler.Delete)

	// Document routes need object storage.
	if objectStore != nil {
		resourceService := services.NewResourceService(db, objectStore)
		resourceHandler := resource_handlers.NewResourceHandler(db, resourceService)

		resources := api.Group("/resources", authMiddleware.Required())
		resources.Get("/", resourceHandler.List)
		resources.Get("/:id/download", resourceHandler.Download)

		faculty.Post("/allocations/:allocationId/resources", resourceHandler.Upload)
		faculty.Delete("/resources/:id", resourceHandler.Delete)

		admin.Post("/exam-schedules", resourceHandler.UploadExamSchedule)
		api.Get("/exam-schedules/download", authMiddleware.Required(), resourceHandler.DownloadExamSchedule)
	} else {
		log.Println("Warning: object storage not configured; resource routes disabled")
	}
}
