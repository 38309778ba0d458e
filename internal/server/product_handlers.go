package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateProductRequest represents the multipart form for a new shop item
type CreateProductRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	PriceCents  int64  `form:"price_cents" binding:"required,gt=0"`
	Stock       int    `form:"stock" binding:"gte=0"`
}

// UpdateProductRequest represents the multipart form for editing a shop item
type UpdateProductRequest struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	PriceCents  *int64 `form:"price_cents"`
	Stock       *int   `form:"stock"`
}

// @Summary List products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Product
// @Router /api/products [get]
func (s *Server) listProducts(c *gin.Context) {
	var products []models.Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// @Summary Create product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Product
// @Router /api/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
	}

	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store product image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		product.ImagePath = imagePath
	}

	if err := s.db.Create(product).Error; err != nil {
		s.removeUpload(product.ImagePath)
		s.logger.Error().Err(err).Msg("Failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("Product created")

	c.JSON(http.StatusCreated, product)
}

// @Summary Update product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /api/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var product models.Product
	if err := models.FindByID(s.db, c.Param("id"), &product); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		product.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		product.Stock = *req.Stock
	}

	oldImage := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store product image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		oldImage = product.ImagePath
		product.ImagePath = imagePath
	}

	if err := s.db.Save(&product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if oldImage != "" {
		s.removeUpload(oldImage)
	}

	c.JSON(http.StatusOK, product)
}

// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /api/products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	var product models.Product
	if err := models.FindByID(s.db, c.Param("id"), &product); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	s.removeUpload(product.ImagePath)

	c.Status(http.StatusNoContent)
}
