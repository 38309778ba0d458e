package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// AssignMeetRequest represents a meeting link assignment
type AssignMeetRequest struct {
	UserID      string    `json:"user_id" binding:"required"`
	DoctorID    string    `json:"doctor_id" binding:"required"`
	MeetURL     string    `json:"meet_url" binding:"required,url"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// @Summary List upcoming meets
// @Tags meets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Meet
// @Router /api/meets [get]
func (s *Server) listMeets(c *gin.Context) {
	var meets []models.Meet
	if err := s.db.Preload("User").Preload("Doctor").
		Where("scheduled_at > ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Find(&meets).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list meets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, meets)
}

// @Summary Assign meet link
// @Description Assigns a video meeting link to a user/doctor appointment
// @Tags meets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssignMeetRequest true "Assignment"
// @Success 201 {object} models.Meet
// @Router /api/meets [post]
func (s *Server) assignMeet(c *gin.Context) {
	var req AssignMeetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := models.FindByID(s.db, req.UserID, &user); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var doctor models.Doctor
	if err := models.FindByID(s.db, req.DoctorID, &doctor); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	meet := &models.Meet{
		UserID:      req.UserID,
		DoctorID:    req.DoctorID,
		MeetURL:     req.MeetURL,
		ScheduledAt: req.ScheduledAt.UTC(),
	}

	if err := s.db.Create(meet).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create meet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign meet"})
		return
	}

	s.logger.Info().
		Str("meet_id", meet.ID).
		Str("user_id", meet.UserID).
		Str("doctor_id", meet.DoctorID).
		Time("scheduled_at", meet.ScheduledAt).
		Msg("Meet assigned")

	c.JSON(http.StatusCreated, meet)
}

// @Summary Delete meet
// @Tags meets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meet ID"
// @Success 204
// @Router /api/meets/{id} [delete]
func (s *Server) deleteMeet(c *gin.Context) {
	var meet models.Meet
	if err := models.FindByID(s.db, c.Param("id"), &meet); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meet not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find meet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&meet).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete meet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meet"})
		return
	}

	c.Status(http.StatusNoContent)
}
