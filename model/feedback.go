package model

import (
	"time"
)

// Feedback is a student rating/comment on a course with the trainer's
// reply/resolve workflow on top. Reply and resolved are independent fields;
// callers that want both set must send both.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	TrainerID    uint      `gorm:"not null;index" json:"trainer_id"`
	CourseID     uint      `gorm:"not null;index" json:"course_id"`
	StudentID    uint      `gorm:"not null;index" json:"student_id"`
	Rating       int       `gorm:"not null" json:"rating"` // 1..5
	Comment      string    `gorm:"type:text" json:"comment"`
	TrainerReply string    `gorm:"type:text" json:"trainer_reply"`
	Resolved     bool      `gorm:"default:false" json:"resolved"`

	// Relationships
	Course  Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Student User   `gorm:"foreignKey:StudentID" json:"-"`
}
