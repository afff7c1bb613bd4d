package student

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/auth"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/validation"
	"gorm.io/gorm"
)

// StudentHandler is the trainer-facing student directory. Students are
// shared platform identities, not trainer-owned rows, so there is no
// trainer scope here.
type StudentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest creates a student account plus profile in one call
type CreateStudentRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	FullName string     `json:"full_name"`
	Phone    string     `json:"phone"`
	Address  string     `json:"address"`
	DOB      *time.Time `json:"dob"`
}

// UpdateStudentRequest patches the student account and profile
type UpdateStudentRequest struct {
	Name     *string    `json:"name"`
	FullName *string    `json:"full_name"`
	Phone    *string    `json:"phone"`
	Address  *string    `json:"address"`
	DOB      *time.Time `json:"dob"`
}

// StudentRow is a directory entry with its profile, when one exists
type StudentRow struct {
	ID        uint                  `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Role      string                `json:"role"`
	CreatedAt time.Time             `json:"created_at"`
	Profile   *model.StudentProfile `json:"profile"`
}

// StudentDetail pairs the account with its (always present) profile
type StudentDetail struct {
	Student StudentRow           `json:"student"`
	Profile model.StudentProfile `json:"profile"`
}

func toRow(u model.User, p *model.StudentProfile) StudentRow {
	return StudentRow{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		Profile:   p,
	}
}

// ListStudents handles GET /api/trainer/students?search=
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	if _, ok := middleware.PrincipalID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	query := h.db.Where("role = ?", model.RoleStudent)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var students []model.User
	if err := query.Order("created_at DESC").Find(&students).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	ids := make([]uint, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}

	profiles := make(map[uint]model.StudentProfile)
	if len(ids) > 0 {
		var rows []model.StudentProfile
		if err := h.db.Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
			return response.InternalServerError(c, err.Error())
		}
		for _, p := range rows {
			profiles[p.UserID] = p
		}
	}

	result := make([]StudentRow, 0, len(students))
	for _, s := range students {
		var profile *model.StudentProfile
		if p, found := profiles[s.ID]; found {
			cp := p
			profile = &cp
		}
		result = append(result, toRow(s, profile))
	}

	return response.OK(c, result)
}

// GetStudent handles GET /api/trainer/students/:studentId. The profile is
// lazily created on first lookup so downstream consumers can rely on it.
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	if _, ok := middleware.PrincipalID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var student model.User
	if err := h.db.Where("role = ?", model.RoleStudent).
		First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	var profile model.StudentProfile
	err := h.db.Where("user_id = ?", student.ID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = model.StudentProfile{
			UserID:        student.ID,
			FullName:      student.Name,
			UpdatedByRole: model.RoleTrainer,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			return response.InternalServerError(c, err.Error())
		}
	} else if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, StudentDetail{
		Student: toRow(student, nil),
		Profile: profile,
	})
}

// CreateStudent handles POST /api/trainer/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	if _, ok := middleware.PrincipalID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}
	if count > 0 {
		return response.BadRequest(c, "Email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.FullName)
	}
	if name == "" {
		name = "Student"
	}

	student := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleStudent,
	}
	profile := model.StudentProfile{
		FullName:      strings.TrimSpace(firstNonEmpty(req.FullName, req.Name)),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		DOB:           req.DOB,
		UpdatedByRole: model.RoleTrainer,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		profile.UserID = student.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, StudentDetail{
		Student: toRow(student, nil),
		Profile: profile,
	})
}

// UpdateStudent handles PUT /api/trainer/students/:studentId
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	if _, ok := middleware.PrincipalID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var student model.User
	if err := h.db.Where("role = ?", model.RoleStudent).
		First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if err := h.db.Save(&student).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	var profile model.StudentProfile
	err := h.db.Where("user_id = ?", student.ID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = model.StudentProfile{UserID: student.ID}
	} else if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.DOB != nil {
		profile.DOB = req.DOB
	}
	profile.UpdatedByRole = model.RoleTrainer

	if err := h.db.Save(&profile).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.OK(c, StudentDetail{
		Student: toRow(student, nil),
		Profile: profile,
	})
}

// DeleteStudent handles DELETE /api/trainer/students/:studentId
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	if _, ok := middleware.PrincipalID(c); !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var student model.User
	if err := h.db.Where("role = ?", model.RoleStudent).
		First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	if err := h.db.Delete(&student).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Deleted(c, "Student deleted")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
