package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment is a gradable task attached to a lesson. Course and module ids
// are denormalized from the lesson at creation time.
type Assignment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	TrainerID    uint           `gorm:"not null;index" json:"trainer_id"`
	CourseID     uint           `gorm:"not null;index" json:"course_id"`
	ModuleID     uint           `gorm:"not null" json:"module_id"`
	LessonID     uint           `gorm:"not null;index" json:"lesson_id"`
	Title        string         `gorm:"not null" json:"title"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	DueDate      *time.Time     `json:"due_date"`
	TotalMarks   float64        `gorm:"default:100" json:"total_marks"`
	Status       string         `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published

	Lesson Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

// QuizQuestion is one multiple-choice question inside a quiz. CorrectIndex is
// a 0-based index into Options; it is stored as supplied by the client and
// not bounds-checked here.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Quiz is a timed multiple-choice task attached to a lesson. Questions are
// stored inline as a JSON column; only quiz definitions live here, student
// attempts are out of scope.
type Quiz struct {
	ID               uint                                 `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time                            `json:"created_at"`
	UpdatedAt        time.Time                            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt                       `gorm:"index" json:"-"`
	TrainerID        uint                                 `gorm:"not null;index" json:"trainer_id"`
	CourseID         uint                                 `gorm:"not null;index" json:"course_id"`
	ModuleID         uint                                 `gorm:"not null" json:"module_id"`
	LessonID         uint                                 `gorm:"not null;index" json:"lesson_id"`
	Title            string                               `gorm:"not null" json:"title"`
	TimeLimitMinutes int                                  `gorm:"default:10" json:"time_limit_minutes"`
	TotalMarks       float64                              `gorm:"default:100" json:"total_marks"`
	Status           string                               `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published
	Questions        datatypes.JSONSlice[QuizQuestion]    `json:"questions"`

	Lesson Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}
