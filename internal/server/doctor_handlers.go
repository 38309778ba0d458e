package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateDoctorRequest represents the multipart form for a new doctor profile
type CreateDoctorRequest struct {
	Name      string `form:"name" binding:"required"`
	Specialty string `form:"specialty" binding:"required"`
	Bio       string `form:"bio"`
}

// UpdateDoctorRequest represents the multipart form for editing a doctor profile
type UpdateDoctorRequest struct {
	Name      string `form:"name"`
	Specialty string `form:"specialty"`
	Bio       string `form:"bio"`
}

// @Summary List doctors
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Doctor
// @Router /api/doctors [get]
func (s *Server) listDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := s.db.Preload("Centers").Order("name ASC").Find(&doctors).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list doctors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// @Summary Create doctor
// @Tags doctors
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Doctor
// @Router /api/doctors [post]
func (s *Server) createDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := &models.Doctor{
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
	}

	if file, err := c.FormFile("photo"); err == nil {
		photoPath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store doctor photo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		doctor.PhotoPath = photoPath
	}

	if err := s.db.Create(doctor).Error; err != nil {
		s.removeUpload(doctor.PhotoPath)
		s.logger.Error().Err(err).Msg("Failed to create doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create doctor"})
		return
	}

	s.logger.Info().Str("doctor_id", doctor.ID).Str("name", doctor.Name).Msg("Doctor created")

	c.JSON(http.StatusCreated, doctor)
}

// @Summary Update doctor
// @Tags doctors
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Success 200 {object} models.Doctor
// @Router /api/doctors/{id} [put]
func (s *Server) updateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := models.FindByID(s.db, c.Param("id"), &doctor); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.Bio != "" {
		doctor.Bio = req.Bio
	}

	oldPhoto := ""
	if file, err := c.FormFile("photo"); err == nil {
		photoPath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store doctor photo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		oldPhoto = doctor.PhotoPath
		doctor.PhotoPath = photoPath
	}

	if err := s.db.Save(&doctor).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update doctor"})
		return
	}

	if oldPhoto != "" {
		s.removeUpload(oldPhoto)
	}

	c.JSON(http.StatusOK, doctor)
}

// @Summary Delete doctor
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Doctor ID"
// @Success 204
// @Router /api/doctors/{id} [delete]
func (s *Server) deleteDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := models.FindByID(s.db, c.Param("id"), &doctor); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Drop team assignments before the row itself
	if err := s.db.Model(&doctor).Association("Centers").Clear(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear doctor assignments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}

	if err := s.db.Delete(&doctor).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete doctor"})
		return
	}

	s.removeUpload(doctor.PhotoPath)

	c.Status(http.StatusNoContent)
}
