package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateCenterRequest represents the multipart form for a new clinic center
type CreateCenterRequest struct {
	Name    string `form:"name" binding:"required"`
	Address string `form:"address" binding:"required"`
	City    string `form:"city" binding:"required"`
	Phone   string `form:"phone"`
}

// UpdateCenterRequest represents the multipart form for editing a center
type UpdateCenterRequest struct {
	Name    string `form:"name"`
	Address string `form:"address"`
	City    string `form:"city"`
	Phone   string `form:"phone"`
}

// AssignDoctorRequest represents a doctor-team assignment
type AssignDoctorRequest struct {
	DoctorID string `json:"doctor_id" binding:"required"`
}

// @Summary List clinic centers
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Center
// @Router /api/centers [get]
func (s *Server) listCenters(c *gin.Context) {
	var centers []models.Center
	if err := s.db.Preload("Team").Order("created_at DESC").Find(&centers).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list centers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, centers)
}

// @Summary Create clinic center
// @Tags centers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Center
// @Router /api/centers [post]
func (s *Server) createCenter(c *gin.Context) {
	var req CreateCenterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	center := &models.Center{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}

	// Gallery image is optional
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store center image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		center.ImagePath = imagePath
	}

	if err := s.db.Create(center).Error; err != nil {
		s.removeUpload(center.ImagePath)
		s.logger.Error().Err(err).Msg("Failed to create center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create center"})
		return
	}

	s.logger.Info().Str("center_id", center.ID).Str("name", center.Name).Msg("Center created")

	c.JSON(http.StatusCreated, center)
}

// @Summary Update clinic center
// @Tags centers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Success 200 {object} models.Center
// @Router /api/centers/{id} [put]
func (s *Server) updateCenter(c *gin.Context) {
	var center models.Center
	if err := models.FindByID(s.db, c.Param("id"), &center); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Center not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateCenterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		center.Name = req.Name
	}
	if req.Address != "" {
		center.Address = req.Address
	}
	if req.City != "" {
		center.City = req.City
	}
	if req.Phone != "" {
		center.Phone = req.Phone
	}

	oldImage := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store center image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		oldImage = center.ImagePath
		center.ImagePath = imagePath
	}

	if err := s.db.Save(&center).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update center"})
		return
	}

	if oldImage != "" {
		s.removeUpload(oldImage)
	}

	c.JSON(http.StatusOK, center)
}

// @Summary Delete clinic center
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Success 204
// @Router /api/centers/{id} [delete]
func (s *Server) deleteCenter(c *gin.Context) {
	var center models.Center
	if err := models.FindByID(s.db, c.Param("id"), &center); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Center not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Drop team assignments before the row itself
	if err := s.db.Model(&center).Association("Team").Clear(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear center team")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete center"})
		return
	}

	if err := s.db.Delete(&center).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete center"})
		return
	}

	s.removeUpload(center.ImagePath)

	c.Status(http.StatusNoContent)
}

// @Summary Assign doctor to center team
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param request body AssignDoctorRequest true "Assignment"
// @Success 200 {object} models.Center
// @Router /api/centers/{id}/team [post]
func (s *Server) assignDoctor(c *gin.Context) {
	var center models.Center
	if err := models.FindByID(s.db, c.Param("id"), &center); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Center not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req AssignDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	if err := s.db.Model(&center).Association("Team").Append(&doctor); err != nil {
		s.logger.Error().Err(err).Msg("Failed to assign doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign doctor"})
		return
	}

	s.logger.Info().
		Str("center_id", center.ID).
		Str("doctor_id", doctor.ID).
		Msg("Doctor assigned to center team")

	if err := s.db.Preload("Team").First(&center, "id = ?", center.ID).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to reload center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, center)
}

// @Summary Remove doctor from center team
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Param doctorId path string true "Doctor ID"
// @Success 204
// @Router /api/centers/{id}/team/{doctorId} [delete]
func (s *Server) unassignDoctor(c *gin.Context) {
	var center models.Center
	if err := models.FindByID(s.db, c.Param("id"), &center); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Center not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find center")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var doctor models.Doctor
	if err := models.FindByID(s.db, c.Param("doctorId"), &doctor); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Model(&center).Association("Team").Delete(&doctor); err != nil {
		s.logger.Error().Err(err).Msg("Failed to unassign doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign doctor"})
		return
	}

	c.Status(http.StatusNoContent)
}
