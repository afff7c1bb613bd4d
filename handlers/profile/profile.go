package profile

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/auth"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/validation"
	"gorm.io/gorm"
)

// ProfileHandler lets a trainer read and update their own account record
type ProfileHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// UpdateProfileRequest patches the trainer's own record. Changing email
// additionally requires the current password as confirmation.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Bio             *string `json:"bio"`
	Expertise       *string `json:"expertise"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
	Linkedin        *string `json:"linkedin"`
	Website         *string `json:"website"`
	Email           *string `json:"email" validate:"omitempty,email"`
	PasswordConfirm string  `json:"password_confirm"`
}

// GetProfile handles GET /api/trainer/profile
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var trainer model.User
	if err := h.db.Where("role = ?", model.RoleTrainer).
		First(&trainer, "id = ?", trainerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Trainer not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, trainer)
}

// UpdateProfile handles PUT /api/trainer/profile
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	var trainer model.User
	if err := h.db.Where("role = ?", model.RoleTrainer).
		First(&trainer, "id = ?", trainerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Trainer not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != "" && newEmail != trainer.Email {
			if req.PasswordConfirm == "" {
				return response.BadRequest(c, "password_confirm is required to change email")
			}
			if err := auth.VerifyPassword(trainer.PasswordHash, req.PasswordConfirm); err != nil {
				return response.BadRequest(c, "Password confirmation is incorrect")
			}

			var count int64
			if err := h.db.Model(&model.User{}).Where("email = ?", newEmail).Count(&count).Error; err != nil {
				return response.InternalServerError(c, err.Error())
			}
			if count > 0 {
				return response.BadRequest(c, "Email already in use")
			}

			trainer.Email = newEmail
		}
	}

	if req.Name != nil {
		trainer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		trainer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		trainer.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Expertise != nil {
		trainer.Expertise = strings.TrimSpace(*req.Expertise)
	}
	if req.ExperienceYears != nil {
		trainer.ExperienceYears = *req.ExperienceYears
	}
	if req.Linkedin != nil {
		trainer.Linkedin = strings.TrimSpace(*req.Linkedin)
	}
	if req.Website != nil {
		trainer.Website = strings.TrimSpace(*req.Website)
	}

	if err := h.db.Save(&trainer).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, trainer)
}
