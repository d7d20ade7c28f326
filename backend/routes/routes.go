package routes

import (
	"time"

	"marketplace/backend/cache"
	"marketplace/backend/config"
	"marketplace/backend/controllers"
	"marketplace/backend/middleware"
	"marketplace/backend/models"
	"marketplace/backend/services"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	loginAttempts = 10
	loginWindow   = 15 * time.Minute
)

// SetupRoutes wires services and controllers under /api. rdb may be nil, which disables
// the course cache and the login rate limit.
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config, logger *utils.Logger) {
	courseCache := cache.New(rdb)

	courseService := services.NewCourseService(db, courseCache, logger)
	gradingService := services.NewGradingService(db, logger)
	enrollmentService := services.NewEnrollmentService(db, courseCache, logger)
	reviewService := services.NewReviewService(db, courseCache, logger)

	api := app.Group("/api")

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, logger)
	limiter := middleware.NewRateLimiter(rdb)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", limiter.Limit("login", loginAttempts, loginWindow), authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorOnly := middleware.RequireRole(models.RoleInstructor)
	studentOnly := middleware.RequireRole(models.RoleStudent)

	// Public catalog
	catalogController := controllers.NewCatalogController(courseService, logger)
	api.Get("/courses/:slug", middleware.OptionalAuth(cfg), catalogController.GetCourseBySlug)

	// Instructor routes
	instructorController := controllers.NewInstructorController(courseService, gradingService, logger)
	instructor := api.Group("/instructor", authMiddleware, instructorOnly)
	instructor.Get("/courses", instructorController.ListCourses)
	instructor.Post("/courses", instructorController.CreateCourse)
	instructor.Post("/courses/simple", instructorController.CreateCourseSimple)
	instructor.Get("/courses/:id", instructorController.GetCourse)
	instructor.Put("/courses/:id", instructorController.UpdateCourse)
	instructor.Delete("/courses/:id", instructorController.DeleteCourse)
	instructor.Put("/courses/:id/simple", instructorController.UpdateCourseSimple)
	instructor.Get("/courses/:id/students", instructorController.GetCourseStudents)
	instructor.Post("/courses/:id/sections", instructorController.CreateSection)
	instructor.Put("/sections/:id", instructorController.UpdateSection)
	instructor.Post("/sections/:id/lessons", instructorController.CreateLesson)
	instructor.Put("/lessons/:id", instructorController.UpdateLesson)
	instructor.Put("/attachments/:id/grade", instructorController.GradeAttachment)

	// Student routes
	studentController := controllers.NewStudentController(enrollmentService, reviewService, logger)
	api.Post("/enrollments", authMiddleware, studentOnly, studentController.Enroll)
	api.Delete("/enrollments/:courseId", authMiddleware, studentOnly, studentController.CancelEnrollment)
	api.Post("/reviews", authMiddleware, studentOnly, studentController.CreateOrUpdateReview)
	api.Post("/attachments", authMiddleware, studentOnly, studentController.SubmitAttachment)
}
