package cron

import (
	"fmt"
	"time"

	"github.com/skillport/trainer-api/model"
)

const (
	// trashRetention is how long soft-deleted content stays recoverable
	// before the purge job drops it for good.
	trashRetention = 30 * 24 * time.Hour

	// cronLogRetention is how long job execution logs are kept.
	cronLogRetention = 90 * 24 * time.Hour
)

// PurgeTrashedContent permanently removes content rows that were
// soft-deleted longer than the retention window ago. Deletion runs
// leaf-first.
func (m *CronManager) PurgeTrashedContent() {
	jobName := "purge_trashed_content"
	cutoff := time.Now().Add(-trashRetention)

	total := int64(0)
	targets := []interface{}{
		&model.Quiz{},
		&model.Assignment{},
		&model.Lesson{},
		&model.CourseModule{},
		&model.Course{},
	}

	for _, target := range targets {
		res := m.db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(target)
		if res.Error != nil {
			m.logJobError(jobName, fmt.Errorf("failed to purge %T: %w", target, res.Error))
			return
		}
		total += res.RowsAffected
	}

	m.logJobComplete(jobName, fmt.Sprintf("Purged %d trashed rows", total))
}

// CleanupCronLogs trims job execution logs past the retention window.
func (m *CronManager) CleanupCronLogs() {
	jobName := "cleanup_cron_logs"
	cutoff := time.Now().Add(-cronLogRetention)

	res := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if res.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old logs: %w", res.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d old log rows", res.RowsAffected))
}
