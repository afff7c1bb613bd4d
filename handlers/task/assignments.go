package task

import (
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

// TaskHandler manages assignments and quizzes attached to lessons
type TaskHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateAssignmentRequest represents the request body for creating an assignment
type CreateAssignmentRequest struct {
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	DueDate      *time.Time `json:"due_date"`
	TotalMarks   *float64   `json:"total_marks" validate:"omitempty,gte=0"`
}

func (h *TaskHandler) findOwnedLesson(trainerID uint, lessonID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&lesson, "id = ?", lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListAssignments handles GET /api/trainer/lessons/:lessonId/assignments
func (h *TaskHandler) ListAssignments(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	lesson, err := h.findOwnedLesson(trainerID, c.Params("lessonId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var items []model.Assignment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("lesson_id = ?", lesson.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, items)
}

// CreateAssignment handles POST /api/trainer/lessons/:lessonId/assignments.
// Course/module ids are denormalized from the lesson so later reads skip
// the join.
func (h *TaskHandler) CreateAssignment(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	lesson, err := h.findOwnedLesson(trainerID, c.Params("lessonId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var req CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Title is required")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	assignment := model.Assignment{
		TrainerID:    trainerID,
		CourseID:     lesson.CourseID,
		ModuleID:     lesson.ModuleID,
		LessonID:     lesson.ID,
		Title:        strings.TrimSpace(req.Title),
		Instructions: req.Instructions,
		DueDate:      req.DueDate,
		TotalMarks:   100,
		Status:       model.StatusDraft,
	}
	if req.TotalMarks != nil {
		assignment.TotalMarks = *req.TotalMarks
	}

	if err := h.db.Create(&assignment).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, assignment)
}

// ToggleAssignmentPublish handles PATCH /api/trainer/assignments/:id/publish
func (h *TaskHandler) ToggleAssignmentPublish(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var assignment model.Assignment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&assignment, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if assignment.Status == model.StatusPublished {
		assignment.Status = model.StatusDraft
	} else {
		assignment.Status = model.StatusPublished
	}

	if err := h.db.Save(&assignment).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, assignment)
}

// DeleteAssignment handles DELETE /api/trainer/assignments/:id
func (h *TaskHandler) DeleteAssignment(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var assignment model.Assignment
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&assignment, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&assignment).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Assignment deleted")
}
