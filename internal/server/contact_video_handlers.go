package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// @Summary List contact page videos
// @Tags contact-videos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ContactVideo
// @Router /api/contact-videos [get]
func (s *Server) listContactVideos(c *gin.Context) {
	var videos []models.ContactVideo
	if err := s.db.Order("created_at DESC").Find(&videos).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list contact videos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, videos)
}

// @Summary Upload contact page videos
// @Description Uploads one or more videos for the contact page; each becomes its own record
// @Tags contact-videos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {array} models.ContactVideo
// @Router /api/contact-videos [post]
func (s *Server) uploadContactVideos(c *gin.Context) {
	files := galleryFiles(c, "videos")
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one video file is required"})
		return
	}

	paths, err := s.saveGallery(c, files, s.saveUploadedVideo)
	if err != nil {
		s.respondGalleryError(c, err, "contact videos")
		return
	}

	videos := make([]models.ContactVideo, 0, len(paths))
	for _, path := range paths {
		videos = append(videos, models.ContactVideo{Path: path})
	}

	if err := s.db.Create(&videos).Error; err != nil {
		s.removeUploads(paths)
		s.logger.Error().Err(err).Msg("Failed to create contact videos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store videos"})
		return
	}

	s.logger.Info().Int("count", len(videos)).Msg("Contact videos uploaded")

	c.JSON(http.StatusCreated, videos)
}

// @Summary Delete contact page video
// @Tags contact-videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contact video ID"
// @Success 204
// @Router /api/contact-videos/{id} [delete]
func (s *Server) deleteContactVideo(c *gin.Context) {
	var video models.ContactVideo
	if err := models.FindByID(s.db, c.Param("id"), &video); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact video not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find contact video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&video).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete contact video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact video"})
		return
	}

	s.removeUpload(video.Path)

	c.Status(http.StatusNoContent)
}
