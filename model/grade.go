package model

import (
	"time"
)

// Grade statuses
const (
	GradePending = "pending"
	GradeGraded  = "graded"
)

// Grade is the single per-student-per-course scoring record. Writes are
// upserts keyed by the composite unique index, so concurrent saves for the
// same pair resolve last-writer-wins. A grade requires a live enrollment at
// write time but deliberately survives a later unenroll.
type Grade struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	TrainerID       uint      `gorm:"not null;index" json:"trainer_id"`
	CourseID        uint      `gorm:"not null;uniqueIndex:idx_grade_course_student" json:"course_id"`
	StudentID       uint      `gorm:"not null;uniqueIndex:idx_grade_course_student" json:"student_id"`
	AssignmentScore float64   `gorm:"default:0" json:"assignment_score"`
	QuizScore       float64   `gorm:"default:0" json:"quiz_score"`
	FinalScore      float64   `gorm:"default:0" json:"final_score"`
	Remarks         string    `gorm:"type:text" json:"remarks"`
	Status          string    `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending, graded

	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
