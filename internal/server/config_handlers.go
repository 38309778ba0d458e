package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// ConfigResponse represents the configuration response
type ConfigResponse struct {
	ID                  string     `json:"id"`
	CleanupSchedule     string     `json:"cleanup_schedule"`
	LastCleanupAt       *time.Time `json:"last_cleanup_at"`
	NextCleanupAt       *time.Time `json:"next_cleanup_at"`
	TicketAutoCloseDays int        `json:"ticket_auto_close_days"`
	CreatedAt           time.Time  `json:"created_at"`
}

// UpdateConfigRequest represents the request to update configuration
type UpdateConfigRequest struct {
	CleanupSchedule     *string `json:"cleanupSchedule"`
	TicketAutoCloseDays *int    `json:"ticketAutoCloseDays"`
}

func configResponse(config *models.Config) ConfigResponse {
	return ConfigResponse{
		ID:                  config.ID,
		CleanupSchedule:     config.CleanupSchedule,
		LastCleanupAt:       config.LastCleanupAt,
		NextCleanupAt:       config.NextCleanupAt,
		TicketAutoCloseDays: config.TicketAutoCloseDays,
		CreatedAt:           config.CreatedAt,
	}
}

// @Summary Get configuration
// @Description Get the current global configuration
// @Tags config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ConfigResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/config [get]
func (s *Server) getConfig(c *gin.Context) {
	var config models.Config
	if err := s.db.First(&config).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, configResponse(&config))
}

// @Summary Update configuration
// @Description Update the global configuration
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateConfigRequest true "Configuration updates"
// @Success 200 {object} ConfigResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/config [patch]
func (s *Server) updateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var config models.Config
	if err := s.db.First(&config).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Configuration not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to get config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.CleanupSchedule != nil {
		schedule := *req.CleanupSchedule
		if schedule != "" {
			next := calculateNextCleanup(schedule, time.Now().UTC())
			if next == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cron expression"})
				return
			}
			config.NextCleanupAt = next
		} else {
			config.NextCleanupAt = nil
		}
		config.CleanupSchedule = schedule
	}

	if req.TicketAutoCloseDays != nil {
		if *req.TicketAutoCloseDays < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ticketAutoCloseDays must be at least 1"})
			return
		}
		config.TicketAutoCloseDays = *req.TicketAutoCloseDays
	}

	if err := s.db.Save(&config).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update configuration"})
		return
	}

	s.logger.Info().
		Str("cleanup_schedule", config.CleanupSchedule).
		Int("ticket_auto_close_days", config.TicketAutoCloseDays).
		Msg("Configuration updated")

	c.JSON(http.StatusOK, configResponse(&config))
}

// calculateNextCleanup calculates the next sweep time from a cron expression
func calculateNextCleanup(cronExpr string, from time.Time) *time.Time {
	if cronExpr == "" {
		return nil
	}

	// Parse cron expression
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil
	}

	next := schedule.Next(from)
	return &next
}
