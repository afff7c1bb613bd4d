package feedback

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"gorm.io/gorm"
)

// FeedbackHandler manages student feedback and the trainer reply workflow
type FeedbackHandler struct {
	db *gorm.DB
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{db: db}
}

// UpdateFeedbackRequest patches the trainer-owned fields. Reply and resolved
// are independent; the contract allows setting either without the other.
type UpdateFeedbackRequest struct {
	TrainerReply *string `json:"trainer_reply"`
	Resolved     *bool   `json:"resolved"`
}

// FeedbackRow is a feedback entry joined with its student identity
type FeedbackRow struct {
	model.Feedback
	Student StudentRef `json:"student"`
}

// StudentRef is the joined student identity
type StudentRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CourseRef is the owning course header returned with list responses
type CourseRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ListFeedbackResponse wraps the course header and its feedback entries
type ListFeedbackResponse struct {
	Course   CourseRef     `json:"course"`
	Feedback []FeedbackRow `json:"feedback"`
}

// ListFeedback handles GET /api/trainer/courses/:courseId/feedback
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var course model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&course, "id = ?", c.Params("courseId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var items []model.Feedback
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Where("course_id = ?", course.ID).
		Preload("Student").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	rows := make([]FeedbackRow, 0, len(items))
	for _, f := range items {
		rows = append(rows, FeedbackRow{
			Feedback: f,
			Student: StudentRef{
				ID:    f.Student.ID,
				Name:  f.Student.Name,
				Email: f.Student.Email,
			},
		})
	}

	return response.OK(c, ListFeedbackResponse{
		Course:   CourseRef{ID: course.ID, Title: course.Title},
		Feedback: rows,
	})
}

// UpdateFeedback handles PATCH /api/trainer/feedback/:id
func (h *FeedbackHandler) UpdateFeedback(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var fb model.Feedback
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&fb, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Feedback not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.TrainerReply != nil {
		fb.TrainerReply = strings.TrimSpace(*req.TrainerReply)
	}
	if req.Resolved != nil {
		fb.Resolved = *req.Resolved
	}

	if err := h.db.Save(&fb).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, fb)
}

// DeleteFeedback handles DELETE /api/trainer/feedback/:id
func (h *FeedbackHandler) DeleteFeedback(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var fb model.Feedback
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		First(&fb, "id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Feedback not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&fb).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Feedback deleted")
}
