package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// SystemInfoResponse represents platform-wide counters for the dashboard
type SystemInfoResponse struct {
	Version string `json:"version"`

	Users     int64 `json:"users"`
	Doctors   int64 `json:"doctors"`
	Centers   int64 `json:"centers"`
	Products  int64 `json:"products"`
	Blogs     int64 `json:"blogs"`
	Carousels int64 `json:"carousels"`

	OpenTickets   int64 `json:"open_tickets"`
	UpcomingMeets int64 `json:"upcoming_meets"`
}

// @Summary Get system information
// @Description Platform version and entity counts for the dashboard overview
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SystemInfoResponse
// @Router /api/system/info [get]
func (s *Server) getSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{Version: s.version}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &info.Users},
		{&models.Doctor{}, &info.Doctors},
		{&models.Center{}, &info.Centers},
		{&models.Product{}, &info.Products},
		{&models.Blog{}, &info.Blogs},
		{&models.Carousel{}, &info.Carousels},
	}

	for _, count := range counts {
		if err := s.db.Model(count.model).Count(count.dest).Error; err != nil {
			s.logger.Error().Err(err).Msg("Failed to count entities")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if err := s.db.Model(&models.Ticket{}).
		Where("status IN ?", []string{models.TicketStatusOpen, models.TicketStatusPending}).
		Count(&info.OpenTickets).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count open tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Model(&models.Meet{}).
		Where("scheduled_at > datetime('now')").
		Count(&info.UpcomingMeets).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count upcoming meets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, info)
}
