package task

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/validation"
	"gorm.io/gorm"
)

// CreateQuizRequest represents the request body for creating a quiz.
// CorrectIndex inside questions is stored as sent; bounds against the
// options list are the client's responsibility for now.
type CreateQuizRequest struct {
	Title            string               `json:"title"`
	TimeLimitMinutes *int                 `json:"time_limit_minutes" validate:"omitempty,gte=0"`
	TotalMarks       *float64             `json:"total_marks" validate:"omitempty,gte=0"`
	Questions        []model.QuizQuestion `json:"questions"`
}

// UpdateQuizRequest carries partial-update fields for a quiz
type UpdateQuizRequest struct {
	Title            *string               `json:"title"`
	TimeLimitMinutes *int                  `json:"time_limit_minutes" validate:"omitempty,gte=0"`
	TotalMarks       *float64              `json:"total_marks" validate:"omitempty,gte=0"`
	Questions        *[]model.QuizQuestion `json:"questions"`
}

// ListQuizzes handles GET /api/trainer/lessons/:lessonId/quizzes
func (h *TaskHandler) ListQuizzes(c *fiber.Ctx) error {
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

	var items []model.Quiz
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("lesson_id = ?", lesson.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, items)
}

// CreateQuiz handles POST /api/trainer/lessons/:lessonId/quizzes
func (h *TaskHandler) CreateQuiz(c *fiber.Ctx) error {
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

	var req CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Title is required")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	quiz := model.Quiz{
		TrainerID:        trainerID,
		CourseID:         lesson.CourseID,
		ModuleID:         lesson.ModuleID,
		LessonID:         lesson.ID,
		Title:            strings.TrimSpace(req.Title),
		TimeLimitMinutes: 10,
		TotalMarks:       100,
		Status:           model.StatusDraft,
		Questions:        req.Questions,
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *req.TimeLimitMinutes
	}
	if req.TotalMarks != nil {
		quiz.TotalMarks = *req.TotalMarks
	}
	if quiz.Questions == nil {
		quiz.Questions = []model.QuizQuestion{}
	}

	if err := h.db.Create(&quiz).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, quiz)
}

// UpdateQuiz handles PUT /api/trainer/quizzes/:id
func (h *TaskHandler) UpdateQuiz(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	var quiz model.Quiz
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Quiz not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.Title != nil {
		quiz.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *req.TimeLimitMinutes
	}
	if req.TotalMarks != nil {
		quiz.TotalMarks = *req.TotalMarks
	}
	if req.Questions != nil {
		quiz.Questions = *req.Questions
	}

	if err := h.db.Save(&quiz).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, quiz)
}

// ToggleQuizPublish handles PATCH /api/trainer/quizzes/:id/publish
func (h *TaskHandler) ToggleQuizPublish(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var quiz model.Quiz
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Quiz not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if quiz.Status == model.StatusPublished {
		quiz.Status = model.StatusDraft
	} else {
		quiz.Status = model.StatusPublished
	}

	if err := h.db.Save(&quiz).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, quiz)
}

// DeleteQuiz handles DELETE /api/trainer/quizzes/:id
func (h *TaskHandler) DeleteQuiz(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var quiz model.Quiz
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&quiz, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Quiz not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&quiz).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Quiz deleted")
}
