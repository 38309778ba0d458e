package workers

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
	"github.com/meddesk-dev/meddesk/internal/tasks"
)

// StartCleanupScheduler runs a periodic check (every minute) for the
// configured housekeeping sweep
func StartCleanupScheduler(client *asynq.Client, db *gorm.DB, logger zerolog.Logger) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	// Run immediately on startup, then every minute
	checkAndEnqueueCleanup(client, db, logger)

	for range ticker.C {
		checkAndEnqueueCleanup(client, db, logger)
	}
}

func checkAndEnqueueCleanup(client *asynq.Client, db *gorm.DB, logger zerolog.Logger) {
	// Load the singleton config
	var config models.Config
	err := db.First(&config).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Debug().Msg("No config found - skipping cleanup check")
			return
		}
		logger.Error().Err(err).Msg("Failed to query config for cleanup")
		return
	}

	// Check if a cleanup schedule is configured
	if config.CleanupSchedule == "" {
		logger.Debug().Msg("No cleanup schedule configured")
		return
	}

	if config.NextCleanupAt != nil && config.NextCleanupAt.After(time.Now()) {
		logger.Debug().
			Time("next_cleanup_at", *config.NextCleanupAt).
			Msg("Cleanup not due yet")
		return
	}

	logger.Info().
		Str("config_id", config.ID).
		Str("cleanup_schedule", config.CleanupSchedule).
		Msg("Cleanup sweep due")

	if _, err := client.Enqueue(tasks.NewMeetSweepExpiredTask(), asynq.Timeout(10*time.Minute)); err != nil {
		logger.Error().Err(err).Msg("Failed to enqueue meet sweep task")
		return
	}

	// Update timestamps immediately after scheduling so the scheduler does
	// not enqueue a new sweep every minute
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"last_cleanup_at": now,
	}
	if next := calculateNextCleanupTime(config.CleanupSchedule, now); next != nil {
		updates["next_cleanup_at"] = next
	}
	if err := db.Model(&config).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Str("config_id", config.ID).Msg("Failed to update cleanup timestamps")
		return
	}

	logger.Info().
		Str("config_id", config.ID).
		Msg("Cleanup sweep enqueued")
}

// calculateNextCleanupTime calculates the next sweep time from a cron schedule
func calculateNextCleanupTime(cronExpr string, from time.Time) *time.Time {
	if cronExpr == "" {
		return nil
	}

	// Parse cron expression (standard 5-field format: minute hour day-of-month month day-of-week)
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil
	}

	next := schedule.Next(from)
	return &next
}
