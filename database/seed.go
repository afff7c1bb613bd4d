package database

import (
	"fmt"
	"log"
	"os"

	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions against the given connection.
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedTrainer(); err != nil {
		return fmt.Errorf("failed to seed trainer: %w", err)
	}

	if err := s.SeedStudents(); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	if err := s.SeedDemoCourse(); err != nil {
		return fmt.Errorf("failed to seed demo course: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedTrainer creates the default trainer from TRAINER_EMAIL/TRAINER_PASSWORD.
// Skipped when the variables are unset or the trainer already exists.
func (s *Seeder) SeedTrainer() error {
	email := os.Getenv("TRAINER_EMAIL")
	password := os.Getenv("TRAINER_PASSWORD")
	if email == "" || password == "" {
		log.Println("TRAINER_EMAIL/TRAINER_PASSWORD not set, skipping trainer seed")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Trainer already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	trainer := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Demo Trainer",
		Role:         model.RoleTrainer,
	}
	if err := s.db.Create(&trainer).Error; err != nil {
		return err
	}

	log.Printf("Seeded trainer %s", email)
	return nil
}

// SeedStudents creates a handful of demo students with profiles.
func (s *Seeder) SeedStudents() error {
	students := []struct {
		Name  string
		Email string
	}{
		{"Aisha Verma", "aisha@student.test"},
		{"Ben Okafor", "ben@student.test"},
		{"Carla Mendes", "carla@student.test"},
	}

	hash, err := auth.HashPassword("student-demo-pass")
	if err != nil {
		return err
	}

	for _, st := range students {
		var count int64
		if err := s.db.Model(&model.User{}).Where("email = ?", st.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		user := model.User{
			Email:        st.Email,
			PasswordHash: hash,
			Name:         st.Name,
			Role:         model.RoleStudent,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}

		profile := model.StudentProfile{
			UserID:        user.ID,
			FullName:      st.Name,
			UpdatedByRole: model.RoleStudent,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded demo students")
	return nil
}

// SeedDemoCourse creates one draft course with a module and a lesson for the
// seeded trainer, if that trainer exists and owns nothing yet.
func (s *Seeder) SeedDemoCourse() error {
	email := os.Getenv("TRAINER_EMAIL")
	if email == "" {
		return nil
	}

	var trainer model.User
	if err := s.db.Where("email = ? AND role = ?", email, model.RoleTrainer).First(&trainer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	var count int64
	if err := s.db.Model(&model.Course{}).Where("trainer_id = ?", trainer.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := model.Course{
		TrainerID:   trainer.ID,
		Title:       "Getting Started with Go",
		Category:    "Programming",
		Level:       model.LevelBeginner,
		Description: "Demo course created by the seeder.",
		Status:      model.StatusDraft,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return err
	}

	mod := model.CourseModule{
		TrainerID: trainer.ID,
		CourseID:  course.ID,
		Title:     "Introduction",
		Order:     1,
	}
	if err := s.db.Create(&mod).Error; err != nil {
		return err
	}

	lesson := model.Lesson{
		TrainerID:       trainer.ID,
		CourseID:        course.ID,
		ModuleID:        mod.ID,
		Title:           "Welcome",
		Type:            model.LessonTypeText,
		ContentText:     "Welcome to the course.",
		DurationMinutes: 5,
		Status:          model.StatusDraft,
		Order:           1,
	}
	if err := s.db.Create(&lesson).Error; err != nil {
		return err
	}

	log.Println("Seeded demo course hierarchy")
	return nil
}
