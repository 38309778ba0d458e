package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// RenameBiteTypeRequest represents the JSON body for renaming a bite type.
// The videos can only be replaced by recreating the entry.
type RenameBiteTypeRequest struct {
	Title string `json:"title" binding:"required"`
}

// @Summary List bite types
// @Tags bite-types
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.BiteType
// @Router /api/bite-types [get]
func (s *Server) listBiteTypes(c *gin.Context) {
	var biteTypes []models.BiteType
	if err := s.db.Order("created_at DESC").Find(&biteTypes).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list bite types")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, biteTypes)
}

// @Summary Create bite type
// @Description Creates a bite type from a multipart form with at least one explainer video
// @Tags bite-types
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.BiteType
// @Router /api/bite-types [post]
func (s *Server) createBiteType(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	files := galleryFiles(c, "videos")
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one video file is required"})
		return
	}

	videoPaths, err := s.saveGallery(c, files, s.saveUploadedVideo)
	if err != nil {
		s.respondGalleryError(c, err, "bite type videos")
		return
	}

	biteType := &models.BiteType{
		Title:      title,
		VideoPaths: videoPaths,
	}

	if err := s.db.Create(biteType).Error; err != nil {
		s.removeUploads(videoPaths)
		s.logger.Error().Err(err).Msg("Failed to create bite type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bite type"})
		return
	}

	s.logger.Info().Str("bite_type_id", biteType.ID).Str("title", biteType.Title).Msg("Bite type created")

	c.JSON(http.StatusCreated, biteType)
}

// @Summary Rename bite type
// @Tags bite-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bite type ID"
// @Success 200 {object} models.BiteType
// @Router /api/bite-types/{id} [patch]
func (s *Server) renameBiteType(c *gin.Context) {
	var biteType models.BiteType
	if err := models.FindByID(s.db, c.Param("id"), &biteType); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bite type not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find bite type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req RenameBiteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	biteType.Title = req.Title
	if err := s.db.Save(&biteType).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to rename bite type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename bite type"})
		return
	}

	c.JSON(http.StatusOK, biteType)
}

// @Summary Delete bite type
// @Tags bite-types
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bite type ID"
// @Success 204
// @Router /api/bite-types/{id} [delete]
func (s *Server) deleteBiteType(c *gin.Context) {
	var biteType models.BiteType
	if err := models.FindByID(s.db, c.Param("id"), &biteType); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bite type not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find bite type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&biteType).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete bite type")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bite type"})
		return
	}

	s.removeUploads(biteType.VideoPaths)

	c.Status(http.StatusNoContent)
}
