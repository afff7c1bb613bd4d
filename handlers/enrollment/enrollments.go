package enrollment

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/validation"
	"gorm.io/gorm"
)

// EnrollmentHandler manages course enrollments
type EnrollmentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(db *gorm.DB) *EnrollmentHandler {
	return &EnrollmentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateEnrollmentRequest enrolls an existing student by email. Progress is
// strictly validated, not clamped; out-of-range values are rejected.
type CreateEnrollmentRequest struct {
	StudentEmail    string   `json:"student_email"`
	ProgressPercent *float64 `json:"progress_percent" validate:"omitempty,gte=0,lte=100"`
	Status          string   `json:"status" validate:"omitempty,oneof=active blocked completed"`
}

// UpdateEnrollmentRequest carries partial-update fields for an enrollment
type UpdateEnrollmentRequest struct {
	ProgressPercent *float64 `json:"progress_percent" validate:"omitempty,gte=0,lte=100"`
	Status          *string  `json:"status" validate:"omitempty,oneof=active blocked completed"`
}

// StudentRef is the joined student identity embedded in enrollment rows
type StudentRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EnrollmentRow is an enrollment joined with its student identity
type EnrollmentRow struct {
	ID              uint       `json:"id"`
	TrainerID       uint       `json:"trainer_id"`
	CourseID        uint       `json:"course_id"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	ProgressPercent float64    `json:"progress_percent"`
	Status          string     `json:"status"`
	Student         StudentRef `json:"student"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CourseRef is the owning course header returned with list responses
type CourseRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ListEnrollmentsResponse wraps the course header and its enrollment rows
type ListEnrollmentsResponse struct {
	Course      CourseRef       `json:"course"`
	Enrollments []EnrollmentRow `json:"enrollments"`
}

func toRow(e model.Enrollment) EnrollmentRow {
	return EnrollmentRow{
		ID:              e.ID,
		TrainerID:       e.TrainerID,
		CourseID:        e.CourseID,
		EnrolledAt:      e.EnrolledAt,
		ProgressPercent: e.ProgressPercent,
		Status:          e.Status,
		Student: StudentRef{
			ID:    e.Student.ID,
			Name:  e.Student.Name,
			Email: e.Student.Email,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (h *EnrollmentHandler) findOwnedCourse(trainerID uint, courseID string) (*model.Course, error) {
	var course model.Course
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListEnrollments handles GET /api/trainer/courses/:courseId/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	course, err := h.findOwnedCourse(trainerID, c.Params("courseId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var enrollments []model.Enrollment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ?", course.ID).
		Preload("Student").
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	rows := make([]EnrollmentRow, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, toRow(e))
	}

	return response.OK(c, ListEnrollmentsResponse{
		Course:      CourseRef{ID: course.ID, Title: course.Title},
		Enrollments: rows,
	})
}

// CreateEnrollment handles POST /api/trainer/courses/:courseId/enrollments.
// The student must already exist; enrolling never creates an account.
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.StudentEmail) == "" {
		return response.BadRequest(c, "student_email is required")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	course, err := h.findOwnedCourse(trainerID, c.Params("courseId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.StudentEmail))
	var student model.User
	if err := h.db.Where("email = ? AND role = ?", email, model.RoleStudent).
		First(&student).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found. Create student first.")
		}
		return response.InternalServerError(c, err.Error())
	}

	enr := model.Enrollment{
		TrainerID: trainerID,
		CourseID:  course.ID,
		StudentID: student.ID,
		Status:    model.EnrollmentActive,
	}
	if req.ProgressPercent != nil {
		enr.ProgressPercent = *req.ProgressPercent
	}
	if req.Status != "" {
		enr.Status = req.Status
	}

	if err := h.db.Create(&enr).Error; err != nil {
		// The composite unique index turns a duplicate attempt into a
		// domain-level conflict, never a silent overwrite.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "Student already enrolled in this course")
		}
		return response.InternalServerError(c, err.Error())
	}

	enr.Student = student
	return response.Created(c, toRow(enr))
}

// UpdateEnrollment handles PUT /api/trainer/enrollments/:enrollmentId
func (h *EnrollmentHandler) UpdateEnrollment(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	var enr model.Enrollment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Preload("Student").
		First(&enr, "id = ?", c.Params("enrollmentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.ProgressPercent != nil {
		enr.ProgressPercent = *req.ProgressPercent
	}
	if req.Status != nil {
		enr.Status = *req.Status
	}

	if err := h.db.Save(&enr).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, toRow(enr))
}

// DeleteEnrollment handles DELETE /api/trainer/enrollments/:enrollmentId.
// Grades and feedback referencing the pair survive on purpose, so history
// is kept across a later re-enrollment.
func (h *EnrollmentHandler) DeleteEnrollment(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var enr model.Enrollment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&enr, "id = ?", c.Params("enrollmentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&enr).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Enrollment deleted")
}
