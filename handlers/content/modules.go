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

// ContentHandler manages modules and lessons inside a course
type ContentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewContentHandler creates a new content handler
func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateModuleRequest represents the request body for creating a module
type CreateModuleRequest struct {
	Title string `json:"title"`
}

// findOwnedCourse resolves a course id against the trainer scope. A course
// owned by someone else resolves exactly like a missing one.
func (h *ContentHandler) findOwnedCourse(trainerID uint, courseID string) (*model.Course, error) {
	var course model.Course
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (h *ContentHandler) findOwnedModule(trainerID uint, moduleID string) (*model.CourseModule, error) {
	var mod model.CourseModule
	err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&mod, "id = ?", moduleID).Error
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

// ListModules handles GET /api/trainer/courses/:courseId/modules
func (h *ContentHandler) ListModules(c *fiber.Ctx) error {
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

	var modules []model.CourseModule
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ?", course.ID).
		Order("item_order ASC").
		Find(&modules).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, modules)
}

// CreateModule handles POST /api/trainer/courses/:courseId/modules
func (h *ContentHandler) CreateModule(c *fiber.Ctx) error {
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

	var req CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Module title is required")
	}

	// Next order slot: max(existing)+1 within the course, starting at 1.
	// Gaps left by deletes are never compacted.
	var maxOrder int
	h.db.Model(&model.CourseModule{}).
		Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ?", course.ID).
		Select("COALESCE(MAX(item_order), 0)").
		Scan(&maxOrder)

	mod := model.CourseModule{
		TrainerID: trainerID,
		CourseID:  course.ID,
		Title:     strings.TrimSpace(req.Title),
		Order:     maxOrder + 1,
	}

	if err := h.db.Create(&mod).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, mod)
}

// DeleteModule handles DELETE /api/trainer/modules/:moduleId.
// Lessons under the module are removed in the same transaction.
func (h *ContentHandler) DeleteModule(c *fiber.Ctx) error {
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

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.OwnedBy(trainerID)).
			Where("module_id = ?", mod.ID).
			Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(mod).Error
	})
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Module deleted")
}
