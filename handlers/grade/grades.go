package grade

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeHandler manages the per-student-per-course grade records
type GradeHandler struct {
	db *gorm.DB
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(db *gorm.DB) *GradeHandler {
	return &GradeHandler{db: db}
}

// SaveGradeRequest upserts the grade for one student in one course. Scores
// are clamped into [0,100], never rejected. This is looser than enrollment
// progress on purpose; both behaviors are load-bearing.
type SaveGradeRequest struct {
	StudentID       uint    `json:"student_id"`
	AssignmentScore float64 `json:"assignment_score"`
	QuizScore       float64 `json:"quiz_score"`
	FinalScore      float64 `json:"final_score"`
	Remarks         string  `json:"remarks"`
	Status          string  `json:"status"`
}

// GradeCell is the grade fragment embedded in a merged roster row
type GradeCell struct {
	ID              uint      `json:"id"`
	AssignmentScore float64   `json:"assignment_score"`
	QuizScore       float64   `json:"quiz_score"`
	FinalScore      float64   `json:"final_score"`
	Remarks         string    `json:"remarks"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StudentRef is the joined student identity in a roster row
type StudentRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RosterRow is one enrollment merged with its grade, when one exists. The
// merge is a left outer join done in application code over two queries.
type RosterRow struct {
	EnrollmentID     uint       `json:"enrollment_id"`
	StudentID        uint       `json:"student_id"`
	Student          StudentRef `json:"student"`
	ProgressPercent  float64    `json:"progress_percent"`
	EnrollmentStatus string     `json:"enrollment_status"`
	Grade            *GradeCell `json:"grade"`
}

// CourseRef is the owning course header returned with list responses
type CourseRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ListGradesResponse wraps the course header and merged roster rows
type ListGradesResponse struct {
	Course CourseRef   `json:"course"`
	Rows   []RosterRow `json:"rows"`
}

// clampScore saturates into [0,100]; NaN collapses to 0.
func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func (h *GradeHandler) findOwnedCourse(trainerID uint, courseID string) (*model.Course, error) {
	var course model.Course
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListGrades handles GET /api/trainer/courses/:courseId/grades
func (h *GradeHandler) ListGrades(c *fiber.Ctx) error {
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

	var grades []model.Grade
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ?", course.ID).
		Find(&grades).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	byStudent := make(map[uint]model.Grade, len(grades))
	for _, g := range grades {
		byStudent[g.StudentID] = g
	}

	rows := make([]RosterRow, 0, len(enrollments))
	for _, e := range enrollments {
		row := RosterRow{
			EnrollmentID:     e.ID,
			StudentID:        e.StudentID,
			Student:          StudentRef{Name: e.Student.Name, Email: e.Student.Email},
			ProgressPercent:  e.ProgressPercent,
			EnrollmentStatus: e.Status,
		}
		if g, found := byStudent[e.StudentID]; found {
			row.Grade = &GradeCell{
				ID:              g.ID,
				AssignmentScore: g.AssignmentScore,
				QuizScore:       g.QuizScore,
				FinalScore:      g.FinalScore,
				Remarks:         g.Remarks,
				Status:          g.Status,
				CreatedAt:       g.CreatedAt,
				UpdatedAt:       g.UpdatedAt,
			}
		}
		rows = append(rows, row)
	}

	return response.OK(c, ListGradesResponse{
		Course: CourseRef{ID: course.ID, Title: course.Title},
		Rows:   rows,
	})
}

// SaveGrade handles POST /api/trainer/courses/:courseId/grades. The write is
// an upsert keyed on (course_id, student_id): concurrent saves for the same
// pair race safely to a single record, last writer wins.
func (h *GradeHandler) SaveGrade(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req SaveGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StudentID == 0 {
		return response.BadRequest(c, "student_id is required")
	}

	course, err := h.findOwnedCourse(trainerID, c.Params("courseId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	// A grade without an enrollment would be an orphan; reject instead.
	var enrCount int64
	if err := h.db.Model(&model.Enrollment{}).
		Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ? AND student_id = ?", course.ID, req.StudentID).
		Count(&enrCount).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}
	if enrCount == 0 {
		return response.BadRequest(c, "Student not enrolled in this course")
	}

	grade := model.Grade{
		TrainerID:       trainerID,
		CourseID:        course.ID,
		StudentID:       req.StudentID,
		AssignmentScore: clampScore(req.AssignmentScore),
		QuizScore:       clampScore(req.QuizScore),
		FinalScore:      clampScore(req.FinalScore),
		Remarks:         strings.TrimSpace(req.Remarks),
		Status:          req.Status,
	}
	if grade.Status == "" {
		grade.Status = model.GradeGraded
	}

	err = h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"assignment_score", "quiz_score", "final_score",
			"remarks", "status", "updated_at",
		}),
	}).Create(&grade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "Grade already exists for this student & course")
		}
		return response.InternalServerError(c, err.Error())
	}

	// Re-read so the response carries the persisted row (the conflict path
	// leaves the in-memory struct without the stored id).
	var saved model.Grade
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ? AND student_id = ?", course.ID, req.StudentID).
		First(&saved).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, saved)
}

// DeleteGrade handles DELETE /api/trainer/grades/:gradeId
func (h *GradeHandler) DeleteGrade(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var grade model.Grade
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&grade, "id = ?", c.Params("gradeId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Grade not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&grade).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Grade deleted")
}
