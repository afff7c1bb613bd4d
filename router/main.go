package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/config"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/handlers"
	content_handlers "github.com/skillport/trainer-api/handlers/content"
	course_handlers "github.com/skillport/trainer-api/handlers/course"
	dashboard_handlers "github.com/skillport/trainer-api/handlers/dashboard"
	enrollment_handlers "github.com/skillport/trainer-api/handlers/enrollment"
	feedback_handlers "github.com/skillport/trainer-api/handlers/feedback"
	grade_handlers "github.com/skillport/trainer-api/handlers/grade"
	profile_handlers "github.com/skillport/trainer-api/handlers/profile"
	student_handlers "github.com/skillport/trainer-api/handlers/student"
	task_handlers "github.com/skillport/trainer-api/handlers/task"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/auth"
	"github.com/skillport/trainer-api/utils/cache"
	"github.com/skillport/trainer-api/utils/middleware"
)

// SetupRoutes wires every handler under the trainer-scoped route group.
func SetupRoutes(app *fiber.App, store *database.GORMStore) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read configuration:", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "skillport-identity"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	db := store.GetDB()

	// Redis-backed write throttle; skipped entirely when Redis is absent.
	var throttle *middleware.WriteThrottle
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	if redisCache, err := cache.NewRedisCache(redisURL); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Write throttling disabled.", err)
	} else {
		throttle = middleware.NewWriteThrottle(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	courseHandler := course_handlers.NewCourseHandler(db)
	contentHandler := content_handlers.NewContentHandler(db)
	taskHandler := task_handlers.NewTaskHandler(db)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db)
	gradeHandler := grade_handlers.NewGradeHandler(db)
	feedbackHandler := feedback_handlers.NewFeedbackHandler(db)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)
	studentHandler := student_handlers.NewStudentHandler(db)
	profileHandler := profile_handlers.NewProfileHandler(db)

	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 300,
		RateLimitWindow:   time.Minute,
	})

	app.Get("/health", handlers.HandleCheckHealth(store))

	api := app.Group("/api")
	trainer := api.Group("/trainer",
		authMiddleware.Required(),
		middleware.RequireRole(model.RoleTrainer),
	)
	if throttle != nil {
		trainer.Use(throttle.Limit())
	}

	RegisterTrainerRoutes(trainer,
		courseHandler, contentHandler, taskHandler,
		enrollmentHandler, gradeHandler, feedbackHandler,
		dashboardHandler, studentHandler, profileHandler)
}

// RegisterTrainerRoutes attaches the trainer surface to an already-guarded
// route group. Split out so the test harness can mount the same routes
// behind a stub principal.
func RegisterTrainerRoutes(
	trainer fiber.Router,
	courseHandler *course_handlers.CourseHandler,
	contentHandler *content_handlers.ContentHandler,
	taskHandler *task_handlers.TaskHandler,
	enrollmentHandler *enrollment_handlers.EnrollmentHandler,
	gradeHandler *grade_handlers.GradeHandler,
	feedbackHandler *feedback_handlers.FeedbackHandler,
	dashboardHandler *dashboard_handlers.DashboardHandler,
	studentHandler *student_handlers.StudentHandler,
	profileHandler *profile_handlers.ProfileHandler,
) {
	// Courses
	trainer.Get("/courses", courseHandler.ListCourses)
	trainer.Post("/courses", courseHandler.CreateCourse)
	trainer.Put("/courses/:id", courseHandler.UpdateCourse)
	trainer.Delete("/courses/:id", courseHandler.DeleteCourse)
	trainer.Patch("/courses/:id/publish", courseHandler.TogglePublish)

	// Modules
	trainer.Get("/courses/:courseId/modules", contentHandler.ListModules)
	trainer.Post("/courses/:courseId/modules", contentHandler.CreateModule)
	trainer.Delete("/modules/:moduleId", contentHandler.DeleteModule)

	// Lessons
	trainer.Get("/modules/:moduleId/lessons", contentHandler.ListLessons)
	trainer.Post("/modules/:moduleId/lessons", contentHandler.CreateLesson)
	trainer.Put("/lessons/:lessonId", contentHandler.UpdateLesson)
	trainer.Delete("/lessons/:lessonId", contentHandler.DeleteLesson)
	trainer.Patch("/lessons/:lessonId/publish", contentHandler.ToggleLessonPublish)

	// Assignments
	trainer.Get("/lessons/:lessonId/assignments", taskHandler.ListAssignments)
	trainer.Post("/lessons/:lessonId/assignments", taskHandler.CreateAssignment)
	trainer.Patch("/assignments/:id/publish", taskHandler.ToggleAssignmentPublish)
	trainer.Delete("/assignments/:id", taskHandler.DeleteAssignment)

	// Quizzes
	trainer.Get("/lessons/:lessonId/quizzes", taskHandler.ListQuizzes)
	trainer.Post("/lessons/:lessonId/quizzes", taskHandler.CreateQuiz)
	trainer.Put("/quizzes/:id", taskHandler.UpdateQuiz)
	trainer.Patch("/quizzes/:id/publish", taskHandler.ToggleQuizPublish)
	trainer.Delete("/quizzes/:id", taskHandler.DeleteQuiz)

	// Enrollments
	trainer.Get("/courses/:courseId/enrollments", enrollmentHandler.ListEnrollments)
	trainer.Post("/courses/:courseId/enrollments", enrollmentHandler.CreateEnrollment)
	trainer.Put("/enrollments/:enrollmentId", enrollmentHandler.UpdateEnrollment)
	trainer.Delete("/enrollments/:enrollmentId", enrollmentHandler.DeleteEnrollment)

	// Grades
	trainer.Get("/courses/:courseId/grades", gradeHandler.ListGrades)
	trainer.Post("/courses/:courseId/grades", gradeHandler.SaveGrade)
	trainer.Delete("/grades/:gradeId", gradeHandler.DeleteGrade)

	// Feedback
	trainer.Get("/courses/:courseId/feedback", feedbackHandler.ListFeedback)
	trainer.Patch("/feedback/:id", feedbackHandler.UpdateFeedback)
	trainer.Delete("/feedback/:id", feedbackHandler.DeleteFeedback)

	// Dashboard
	trainer.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Student directory
	trainer.Get("/students", studentHandler.ListStudents)
	trainer.Post("/students", studentHandler.CreateStudent)
	trainer.Get("/students/:studentId", studentHandler.GetStudent)
	trainer.Put("/students/:studentId", studentHandler.UpdateStudent)
	trainer.Delete("/students/:studentId", studentHandler.DeleteStudent)

	// Trainer profile
	trainer.Get("/profile", profileHandler.GetProfile)
	trainer.Put("/profile", profileHandler.UpdateProfile)
}
