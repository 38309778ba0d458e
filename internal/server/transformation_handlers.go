package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateTransformationRequest represents the multipart form for a new
// before/after showcase post
type CreateTransformationRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// UpdateTransformationRequest represents the multipart form for editing a
// showcase post. Zero-value fields are left unchanged; the image is optional.
type UpdateTransformationRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// @Summary List before/after showcase posts
// @Tags transformations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Transformation
// @Router /api/transformations [get]
func (s *Server) listTransformations(c *gin.Context) {
	var posts []models.Transformation
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list transformations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// @Summary Create before/after showcase post
// @Tags transformations
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Transformation
// @Router /api/transformations [post]
func (s *Server) createTransformation(c *gin.Context) {
	var req CreateTransformationRequest
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
		s.logger.Error().Err(err).Msg("Failed to store transformation image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	post := &models.Transformation{
		Title:       req.Title,
		Description: req.Description,
		ImagePath:   imagePath,
	}

	if err := s.db.Create(post).Error; err != nil {
		s.removeUpload(imagePath)
		s.logger.Error().Err(err).Msg("Failed to create transformation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transformation"})
		return
	}

	s.logger.Info().Str("transformation_id", post.ID).Str("title", post.Title).Msg("Transformation created")

	c.JSON(http.StatusCreated, post)
}

// @Summary Update before/after showcase post
// @Tags transformations
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transformation ID"
// @Success 200 {object} models.Transformation
// @Router /api/transformations/{id} [put]
func (s *Server) updateTransformation(c *gin.Context) {
	var post models.Transformation
	if err := models.FindByID(s.db, c.Param("id"), &post); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transformation not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find transformation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateTransformationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Description != "" {
		post.Description = req.Description
	}

	oldImage := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store transformation image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		oldImage = post.ImagePath
		post.ImagePath = imagePath
	}

	if err := s.db.Save(&post).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update transformation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transformation"})
		return
	}

	if oldImage != "" {
		s.removeUpload(oldImage)
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Delete before/after showcase post
// @Tags transformations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transformation ID"
// @Success 204
// @Router /api/transformations/{id} [delete]
func (s *Server) deleteTransformation(c *gin.Context) {
	var post models.Transformation
	if err := models.FindByID(s.db, c.Param("id"), &post); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transformation not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find transformation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&post).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete transformation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transformation"})
		return
	}

	s.removeUpload(post.ImagePath)

	c.Status(http.StatusNoContent)
}
