// Package testutil holds the shared harness for handler tests: an isolated
// in-memory database plus a fiber app with the trainer routes mounted behind
// a stub principal, so tests exercise the real route surface without JWTs.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
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
	"github.com/skillport/trainer-api/router"
	"github.com/skillport/trainer-api/utils/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database keyed by the test name and
// migrates the full schema. TranslateError stays on so unique violations
// surface as gorm.ErrDuplicatedKey exactly like in production.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// StubPrincipal injects the locals the auth middleware would set after
// validating a token.
func StubPrincipal(userID uint, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_email", fmt.Sprintf("user%d@test.local", userID))
		c.Locals("user_role", role)
		return c.Next()
	}
}

// NewTrainerAPI mounts the full trainer route surface behind a stub trainer
// principal. Requests hit the same routes and handlers as production, minus
// JWT verification and the write throttle.
func NewTrainerAPI(db *gorm.DB, trainerID uint) *fiber.App {
	app := fiber.New()

	trainer := app.Group("/api/trainer", StubPrincipal(trainerID, model.RoleTrainer))

	router.RegisterTrainerRoutes(trainer,
		course_handlers.NewCourseHandler(db),
		content_handlers.NewContentHandler(db),
		task_handlers.NewTaskHandler(db),
		enrollment_handlers.NewEnrollmentHandler(db),
		grade_handlers.NewGradeHandler(db),
		feedback_handlers.NewFeedbackHandler(db),
		dashboard_handlers.NewDashboardHandler(db),
		student_handlers.NewStudentHandler(db),
		profile_handlers.NewProfileHandler(db),
	)

	return app
}

// DoJSON performs one request against the app and returns the response.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// DecodeBody unmarshals the response body into out and closes it.
func DecodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", raw, err)
	}
}

// CreateTrainer persists a trainer fixture and returns it.
func CreateTrainer(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()

	hash, err := auth.HashPassword("trainer-test-pass")
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	trainer := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Trainer",
		Role:         model.RoleTrainer,
	}
	if err := db.Create(&trainer).Error; err != nil {
		t.Fatalf("failed to create trainer fixture: %v", err)
	}
	return trainer
}

// CreateStudent persists a student fixture and returns it.
func CreateStudent(t *testing.T, db *gorm.DB, name, email string) model.User {
	t.Helper()

	hash, err := auth.HashPassword("student-test-pass")
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	student := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleStudent,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("failed to create student fixture: %v", err)
	}
	return student
}

// CreateCourse persists a course fixture owned by the given trainer.
func CreateCourse(t *testing.T, db *gorm.DB, trainerID uint, title string) model.Course {
	t.Helper()

	course := model.Course{
		TrainerID: trainerID,
		Title:     title,
		Category:  "General",
		Level:     model.LevelBeginner,
		Status:    model.StatusDraft,
	}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course fixture: %v", err)
	}
	return course
}

// Enroll persists an enrollment fixture for the student in the course.
func Enroll(t *testing.T, db *gorm.DB, trainerID, courseID, studentID uint) model.Enrollment {
	t.Helper()

	enr := model.Enrollment{
		TrainerID: trainerID,
		CourseID:  courseID,
		StudentID: studentID,
		Status:    model.EnrollmentActive,
	}
	if err := db.Create(&enr).Error; err != nil {
		t.Fatalf("failed to create enrollment fixture: %v", err)
	}
	return enr
}
