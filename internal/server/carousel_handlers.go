package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateCarouselRequest represents the multipart form for a new carousel ad
type CreateCarouselRequest struct {
	Title    string `form:"title" binding:"required"`
	LinkURL  string `form:"link_url"`
	Position int    `form:"position"`
}

// @Summary List carousel ads
// @Tags carousels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Carousel
// @Router /api/carousels [get]
func (s *Server) listCarousels(c *gin.Context) {
	var carousels []models.Carousel
	if err := s.db.Order("position ASC, created_at DESC").Find(&carousels).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list carousels")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, carousels)
}

// @Summary Create carousel ad
// @Description Creates a carousel ad from a multipart form with an image file
// @Tags carousels
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Carousel
// @Router /api/carousels [post]
func (s *Server) createCarousel(c *gin.Context) {
	var req CreateCarouselRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	imagePath, err := s.saveUploadedImage(c, file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to store carousel image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	carousel := &models.Carousel{
		Title:     req.Title,
		ImagePath: imagePath,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		Active:    true,
	}

	if err := s.db.Create(carousel).Error; err != nil {
		s.removeUpload(imagePath)
		s.logger.Error().Err(err).Msg("Failed to create carousel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create carousel"})
		return
	}

	s.logger.Info().Str("carousel_id", carousel.ID).Str("title", carousel.Title).Msg("Carousel created")

	c.JSON(http.StatusCreated, carousel)
}

// @Summary Delete carousel ad
// @Tags carousels
// @Produce json
// @Security BearerAuth
// @Param id path string true "Carousel ID"
// @Success 204
// @Router /api/carousels/{id} [delete]
func (s *Server) deleteCarousel(c *gin.Context) {
	var carousel models.Carousel
	if err := models.FindByID(s.db, c.Param("id"), &carousel); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carousel not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find carousel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&carousel).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete carousel")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete carousel"})
		return
	}

	s.removeUpload(carousel.ImagePath)

	c.Status(http.StatusNoContent)
}
