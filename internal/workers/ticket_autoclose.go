package workers

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
	"github.com/meddesk-dev/meddesk/internal/tasks"
)

// HandleTicketAutoClose closes a ticket that was resolved and not reopened
// during the grace period. Tickets that left the resolved state are skipped.
func HandleTicketAutoClose(ctx context.Context, t *asynq.Task, db *gorm.DB, logger zerolog.Logger) error {
	payload, err := tasks.ParseTicketAutoClosePayload(t)
	if err != nil {
		return err
	}

	var ticket models.Ticket
	if err := db.WithContext(ctx).Where("id = ?", payload.TicketID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Ticket was deleted in the meantime; nothing to close
			logger.Debug().Str("ticket_id", payload.TicketID).Msg("Ticket gone - skipping auto-close")
			return nil
		}
		logger.Error().Err(err).Str("ticket_id", payload.TicketID).Msg("Failed to load ticket")
		return err
	}

	if ticket.Status != models.TicketStatusResolved {
		logger.Debug().
			Str("ticket_id", ticket.ID).
			Str("status", ticket.Status).
			Msg("Ticket no longer resolved - skipping auto-close")
		return nil
	}

	if err := db.WithContext(ctx).Model(&ticket).Update("status", models.TicketStatusClosed).Error; err != nil {
		logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to auto-close ticket")
		return err
	}

	logger.Info().Str("ticket_id", ticket.ID).Msg("Ticket auto-closed")
	return nil
}
