package content

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

// CreateLessonRequest represents the request body for creating a lesson
type CreateLessonRequest struct {
	Title           string `json:"title"`
	Type            string `json:"type" validate:"omitempty,oneof=video pdf link text"`
	ResourceURL     string `json:"resource_url"`
	ContentText     string `json:"content_text"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
}

// UpdateLessonRequest carries partial-update fields for a lesson
type UpdateLessonRequest struct {
	Title           *string `json:"title"`
	Type            *string `json:"type" validate:"omitempty,oneof=video pdf link text"`
	ResourceURL     *string `json:"resource_url"`
	ContentText     *string `json:"content_text"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	Status          *string `json:"status" validate:"omitempty,oneof=draft published"`
	Order           *int    `json:"order" validate:"omitempty,gte=1"`
}

func (h *ContentHandler) findOwnedLesson(trainerID uint, lessonID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&lesson, "id = ?", lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListLessons handles GET /api/trainer/modules/:moduleId/lessons
func (h *ContentHandler) ListLessons(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	mod, err := h.findOwnedModule(trainerID, c.Params("moduleId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Module not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var lessons []model.Lesson
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("module_id = ?", mod.ID).
		Order("item_order ASC").
		Find(&lessons).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, lessons)
}

// CreateLesson handles POST /api/trainer/modules/:moduleId/lessons
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	mod, err := h.findOwnedModule(trainerID, c.Params("moduleId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Module not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var req CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Lesson title is required")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	var maxOrder int
	h.db.Model(&model.Lesson{}).
		Scopes(database.OwnedBy(trainerID)).
		Where("module_id = ?", mod.ID).
		Select("COALESCE(MAX(item_order), 0)").
		Scan(&maxOrder)

	lesson := model.Lesson{
		TrainerID:       trainerID,
		CourseID:        mod.CourseID,
		ModuleID:        mod.ID,
		Title:           strings.TrimSpace(req.Title),
		Type:            req.Type,
		ResourceURL:     req.ResourceURL,
		ContentText:     req.ContentText,
		DurationMinutes: req.DurationMinutes,
		Status:          model.StatusDraft,
		Order:           maxOrder + 1,
	}
	if lesson.Type == "" {
		lesson.Type = model.LessonTypeVideo
	}

	if err := h.db.Create(&lesson).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, lesson)
}

// UpdateLesson handles PUT /api/trainer/lessons/:lessonId
func (h *ContentHandler) UpdateLesson(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	lesson, err := h.findOwnedLesson(trainerID, c.Params("lessonId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return response.BadRequest(c, "Title cannot be empty")
		}
		lesson.Title = title
	}
	if req.Type != nil {
		lesson.Type = *req.Type
	}
	if req.ResourceURL != nil {
		lesson.ResourceURL = *req.ResourceURL
	}
	if req.ContentText != nil {
		lesson.ContentText = *req.ContentText
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		lesson.Status = *req.Status
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}

	if err := h.db.Save(lesson).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, lesson)
}

// DeleteLesson handles DELETE /api/trainer/lessons/:lessonId.
// Assignments and quizzes under the lesson are left in place.
func (h *ContentHandler) DeleteLesson(c *fiber.Ctx) error {
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

	if err := h.db.Delete(lesson).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Lesson deleted")
}

// ToggleLessonPublish handles PATCH /api/trainer/lessons/:lessonId/publish
func (h *ContentHandler) ToggleLessonPublish(c *fiber.Ctx) error {
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

	if lesson.Status == model.StatusPublished {
		lesson.Status = model.StatusDraft
	} else {
		lesson.Status = model.StatusPublished
	}

	if err := h.db.Save(lesson).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, lesson)
}
