package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/skillport/trainer-api/model"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron: c,
		db:   db,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Daily at 3 AM: permanently drop soft-deleted content past retention
	_, err := m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("purge_trashed_content")
		m.PurgeTrashedContent()
	})
	if err != nil {
		return err
	}

	// Weekly on Sunday at 4 AM: trim old cron logs
	_, err = m.cron.AddFunc("0 0 4 * * 0", func() {
		m.logJobStart("cleanup_cron_logs")
		m.CleanupCronLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	now := time.Now()
	var cronLog model.CronJobLog
	if err := m.db.Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		First(&cronLog).Error; err != nil {
		return
	}

	cronLog.Status = "completed"
	cronLog.CompletedAt = &now
	cronLog.Duration = int(now.Sub(cronLog.StartedAt).Milliseconds())
	cronLog.Message = message
	m.db.Save(&cronLog)
}

// logJobError logs a failed cron job
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Job failed: %s - %v", jobName, err)

	now := time.Now()
	var cronLog model.CronJobLog
	if dbErr := m.db.Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		First(&cronLog).Error; dbErr != nil {
		return
	}

	cronLog.Status = "failed"
	cronLog.CompletedAt = &now
	cronLog.Duration = int(now.Sub(cronLog.StartedAt).Milliseconds())
	cronLog.ErrorMsg = err.Error()
	m.db.Save(&cronLog)
}
