package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

// User represents a registered user in the system. Trainers own courses and
// all descendant content; students are referenced by enrollments, grades and
// feedback. Credential lifecycle (login, token issuance) belongs to the
// identity service, not here.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // trainer, student

	// Trainer profile fields
	Phone           string `gorm:"type:varchar(30)" json:"phone"`
	Bio             string `gorm:"type:text" json:"bio"`
	Expertise       string `gorm:"type:varchar(255)" json:"expertise"`
	ExperienceYears int    `gorm:"default:0" json:"experience_years"`
	Linkedin        string `gorm:"type:varchar(255)" json:"linkedin"`
	Website         string `gorm:"type:varchar(255)" json:"website"`

	// Relationships
	Courses []Course `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"-"`
}

// StudentProfile holds the extended identity record for a student, one per
// user. It is lazily created the first time a trainer looks the student up.
type StudentProfile struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string     `gorm:"type:varchar(255)" json:"full_name"`
	Phone         string     `gorm:"type:varchar(30)" json:"phone"`
	Address       string     `gorm:"type:varchar(500)" json:"address"`
	DOB           *time.Time `json:"dob"`
	UpdatedByRole string     `gorm:"type:varchar(20);default:'student'" json:"updated_by_role"` // student, trainer, admin

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
