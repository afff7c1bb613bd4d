package model

import (
	"time"
)

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentBlocked   = "blocked"
	EnrollmentCompleted = "completed"
)

// Enrollment links one student to one course owned by a trainer. The
// composite unique index makes a duplicate enrollment attempt fail at the
// storage layer; rows are hard-deleted so the index always reflects the
// live membership set.
type Enrollment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	TrainerID       uint      `gorm:"not null;index" json:"trainer_id"`
	CourseID        uint      `gorm:"not null;uniqueIndex:idx_enrollment_course_student" json:"course_id"`
	StudentID       uint      `gorm:"not null;uniqueIndex:idx_enrollment_course_student" json:"student_id"`
	ProgressPercent float64   `gorm:"default:0" json:"progress_percent"`
	Status          string    `gorm:"type:varchar(20);default:'active'" json:"status"` // active, blocked, completed
	EnrolledAt      time.Time `gorm:"autoCreateTime" json:"enrolled_at"`

	// Relationships
	Course  Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Student User   `gorm:"foreignKey:StudentID" json:"-"`
}
