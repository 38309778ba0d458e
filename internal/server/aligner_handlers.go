package server

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// galleryFiles returns the multipart files sent under the given field name.
// A request without a multipart body simply has no gallery.
func galleryFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File[field]
}

// saveGallery stores a set of uploaded files, cleaning up the ones already
// written if a later one fails.
func (s *Server) saveGallery(c *gin.Context, files []*multipart.FileHeader,
	save func(*gin.Context, *multipart.FileHeader) (string, error)) ([]string, error) {

	var paths []string
	for _, file := range files {
		path, err := save(c, file)
		if err != nil {
			s.removeUploads(paths)
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *Server) respondGalleryError(c *gin.Context, err error, what string) {
	if errors.Is(err, ErrUnsupportedImageType) || errors.Is(err, ErrUnsupportedVideoType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error().Err(err).Msg("Failed to store " + what)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store " + what})
}

// @Summary List aligner offerings
// @Tags aligners
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Aligner
// @Router /api/aligners [get]
func (s *Server) listAligners(c *gin.Context) {
	var aligners []models.Aligner
	if err := s.db.Order("created_at DESC").Find(&aligners).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list aligners")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, aligners)
}

// @Summary Create aligner offering
// @Description Creates an aligner offering from a multipart form with image and video galleries
// @Tags aligners
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Aligner
// @Router /api/aligners [post]
func (s *Server) createAligner(c *gin.Context) {
	price := c.PostForm("price")
	if price == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price is required"})
		return
	}

	imagePaths, err := s.saveGallery(c, galleryFiles(c, "images"), s.saveUploadedImage)
	if err != nil {
		s.respondGalleryError(c, err, "aligner images")
		return
	}

	videoPaths, err := s.saveGallery(c, galleryFiles(c, "videos"), s.saveUploadedVideo)
	if err != nil {
		s.removeUploads(imagePaths)
		s.respondGalleryError(c, err, "aligner videos")
		return
	}

	aligner := &models.Aligner{
		Price:      price,
		ImagePaths: imagePaths,
		VideoPaths: videoPaths,
	}

	if err := s.db.Create(aligner).Error; err != nil {
		s.removeUploads(imagePaths)
		s.removeUploads(videoPaths)
		s.logger.Error().Err(err).Msg("Failed to create aligner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create aligner"})
		return
	}

	s.logger.Info().Str("aligner_id", aligner.ID).Msg("Aligner created")

	c.JSON(http.StatusCreated, aligner)
}

// @Summary Update aligner offering
// @Description Updates the price; new image or video files replace the whole gallery
// @Tags aligners
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Aligner ID"
// @Success 200 {object} models.Aligner
// @Router /api/aligners/{id} [patch]
func (s *Server) updateAligner(c *gin.Context) {
	var aligner models.Aligner
	if err := models.FindByID(s.db, c.Param("id"), &aligner); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aligner not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find aligner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if price := c.PostForm("price"); price != "" {
		aligner.Price = price
	}

	var oldImages, oldVideos []string
	if files := galleryFiles(c, "images"); len(files) > 0 {
		paths, err := s.saveGallery(c, files, s.saveUploadedImage)
		if err != nil {
			s.respondGalleryError(c, err, "aligner images")
			return
		}
		oldImages = aligner.ImagePaths
		aligner.ImagePaths = paths
	}
	if files := galleryFiles(c, "videos"); len(files) > 0 {
		paths, err := s.saveGallery(c, files, s.saveUploadedVideo)
		if err != nil {
			s.respondGalleryError(c, err, "aligner videos")
			return
		}
		oldVideos = aligner.VideoPaths
		aligner.VideoPaths = paths
	}

	if err := s.db.Save(&aligner).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update aligner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update aligner"})
		return
	}

	s.removeUploads(oldImages)
	s.removeUploads(oldVideos)

	c.JSON(http.StatusOK, aligner)
}

// @Summary Delete aligner offering
// @Tags aligners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Aligner ID"
// @Success 204
// @Router /api/aligners/{id} [delete]
func (s *Server) deleteAligner(c *gin.Context) {
	var aligner models.Aligner
	if err := models.FindByID(s.db, c.Param("id"), &aligner); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Aligner not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find aligner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&aligner).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete aligner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete aligner"})
		return
	}

	s.removeUploads(aligner.ImagePaths)
	s.removeUploads(aligner.VideoPaths)

	c.Status(http.StatusNoContent)
}
