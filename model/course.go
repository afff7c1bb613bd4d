package model

import (
	"time"

	"gorm.io/gorm"
)

// Publish states shared by Course, Lesson, Assignment and Quiz.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Course difficulty levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Lesson content types
const (
	LessonTypeVideo = "video"
	LessonTypePDF   = "pdf"
	LessonTypeLink  = "link"
	LessonTypeText  = "text"
)

// Course is the root of the trainer content hierarchy. TrainerID is assigned
// at creation and never reassigned; every descendant query is scoped by it.
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	TrainerID   uint           `gorm:"not null;index" json:"trainer_id"`
	Title       string         `gorm:"not null" json:"title"`
	Category    string         `gorm:"type:varchar(100);default:'General'" json:"category"`
	Level       string         `gorm:"type:varchar(20);default:'beginner'" json:"level"` // beginner, intermediate, advanced
	Price       float64        `gorm:"default:0" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published

	// Relationships
	Modules     []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Enrollments []Enrollment   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseModule is an ordered section within a course. Order is assigned as
// max(existing)+1 at creation and never re-sequenced on delete, so gaps are
// expected. Named CourseModule to avoid colliding with the Go keyword-ish
// "Module" reading in call sites; the table stays "modules".
type CourseModule struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	TrainerID uint           `gorm:"not null;index" json:"trainer_id"`
	CourseID  uint           `gorm:"not null;index" json:"course_id"`
	Title     string         `gorm:"not null" json:"title"`
	Order     int            `gorm:"column:item_order;default:1" json:"order"`

	// Relationships
	Course  Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the natural table name despite the Go type rename.
func (CourseModule) TableName() string {
	return "modules"
}

// Lesson is a single content unit inside a module. CourseID is denormalized
// from the parent module so task and listing queries avoid a join.
type Lesson struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	TrainerID       uint           `gorm:"not null;index" json:"trainer_id"`
	CourseID        uint           `gorm:"not null;index" json:"course_id"`
	ModuleID        uint           `gorm:"not null;index" json:"module_id"`
	Title           string         `gorm:"not null" json:"title"`
	Type            string         `gorm:"type:varchar(20);default:'video'" json:"type"` // video, pdf, link, text
	ResourceURL     string         `gorm:"type:varchar(2048)" json:"resource_url"`       // for video/pdf/link
	ContentText     string         `gorm:"type:text" json:"content_text"`                // for text lessons
	DurationMinutes int            `gorm:"default:0" json:"duration_minutes"`
	Status          string         `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published
	Order           int            `gorm:"column:item_order;default:1" json:"order"`

	// Relationships
	Module CourseModule `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
}
