package course

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

// CourseHandler handles the trainer's course CRUD and publish toggle
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Level       string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
}

// UpdateCourseRequest uses pointer fields so an absent field is left
// untouched while a present-but-empty one can still be rejected.
type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Category    *string  `json:"category"`
	Level       *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published"`
}

// ListCourses handles GET /api/trainer/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var courses []model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, courses)
}

// CreateCourse handles POST /api/trainer/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Title is required")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	course := model.Course{
		TrainerID:   trainerID,
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Level:       req.Level,
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Status:      model.StatusDraft,
	}
	if course.Category == "" {
		course.Category = "General"
	}
	if course.Level == "" {
		course.Level = model.LevelBeginner
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/trainer/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	var course model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return response.BadRequest(c, "Title cannot be empty")
		}
		course.Title = title
	}
	if req.Category != nil {
		course.Category = strings.TrimSpace(*req.Category)
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		course.Status = *req.Status
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, course)
}

// DeleteCourse handles DELETE /api/trainer/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var course model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	// Course delete does not cascade to modules here; child cleanup is the
	// module delete path's job.
	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Course deleted")
}

// TogglePublish handles PATCH /api/trainer/courses/:id/publish
func (h *CourseHandler) TogglePublish(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var course model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if course.Status == model.StatusPublished {
		course.Status = model.StatusDraft
	} else {
		course.Status = model.StatusPublished
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, course)
}
