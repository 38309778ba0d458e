package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
	"github.com/meddesk-dev/meddesk/internal/tasks"
)

// UpdateTicketRequest represents a ticket status/note update
type UpdateTicketRequest struct {
	Status    string `json:"status" binding:"omitempty,oneof=open pending resolved closed"`
	AdminNote string `json:"admin_note"`
}

// @Summary List support tickets
// @Description List tickets, optionally filtered by status
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Ticket
// @Router /api/tickets [get]
func (s *Server) listTickets(c *gin.Context) {
	query := s.db.Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// @Summary Update support ticket
// @Description Update a ticket's status or admin note. Resolving a ticket
// schedules its automatic close after the configured grace period.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body UpdateTicketRequest true "Update"
// @Success 200 {object} models.Ticket
// @Router /api/tickets/{id} [patch]
func (s *Server) updateTicket(c *gin.Context) {
	var ticket models.Ticket
	if err := models.FindByID(s.db, c.Param("id"), &ticket); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AdminNote != "" {
		ticket.AdminNote = req.AdminNote
	}

	resolved := false
	if req.Status != "" && req.Status != ticket.Status {
		ticket.Status = req.Status
		if req.Status == models.TicketStatusResolved {
			now := time.Now().UTC()
			ticket.ResolvedAt = &now
			resolved = true
		}
	}

	if err := s.db.Save(&ticket).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	// Resolved tickets close themselves after the grace period unless reopened
	if resolved {
		var appConfig models.Config
		autoCloseDays := 7
		if err := s.db.First(&appConfig).Error; err == nil && appConfig.TicketAutoCloseDays > 0 {
			autoCloseDays = appConfig.TicketAutoCloseDays
		}

		task, err := tasks.NewTicketAutoCloseTask(ticket.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to build auto-close task")
		} else {
			delay := time.Duration(autoCloseDays) * 24 * time.Hour
			if _, err := s.asynqClient.Enqueue(task, asynq.ProcessIn(delay)); err != nil {
				s.logger.Error().Err(err).Str("ticket_id", ticket.ID).Msg("Failed to enqueue auto-close task")
			}
		}
	}

	s.logger.Info().
		Str("ticket_id", ticket.ID).
		Str("status", ticket.Status).
		Msg("Ticket updated")

	c.JSON(http.StatusOK, ticket)
}
