package workers

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// Meets are kept for a day after their scheduled time so an admin can still
// look up a link for a recently finished appointment.
const meetRetention = 24 * time.Hour

// HandleMeetSweepExpired deletes meet links whose scheduled time passed more
// than the retention period ago
func HandleMeetSweepExpired(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	cutoff := time.Now().UTC().Add(-meetRetention)

	result := db.WithContext(ctx).Where("scheduled_at < ?", cutoff).Delete(&models.Meet{})
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("Failed to sweep expired meets")
		return result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info().
			Int64("deleted", result.RowsAffected).
			Time("cutoff", cutoff).
			Msg("Expired meets swept")
	}

	return nil
}
