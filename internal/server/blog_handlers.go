package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meddesk-dev/meddesk/internal/models"
)

// CreateBlogRequest represents the multipart form for a new blog post
type CreateBlogRequest struct {
	Title     string `form:"title" binding:"required"`
	Slug      string `form:"slug" binding:"required" validate:"slugfield"`
	Body      string `form:"body" binding:"required"`
	Author    string `form:"author"`
	Published bool   `form:"published"`
}

// UpdateBlogRequest represents the multipart form for editing a blog post.
// Zero-value fields are left unchanged; the cover image is optional.
type UpdateBlogRequest struct {
	Title     string `form:"title"`
	Body      string `form:"body"`
	Author    string `form:"author"`
	Published *bool  `form:"published"`
}

// @Summary List blog posts
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Blog
// @Router /api/blogs [get]
func (s *Server) listBlogs(c *gin.Context) {
	var blogs []models.Blog
	if err := s.db.Order("created_at DESC").Find(&blogs).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list blogs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, blogs)
}

// @Summary Create blog post
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Blog
// @Router /api/blogs [post]
func (s *Server) createBlog(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must be lowercase alphanumeric with hyphens"})
		return
	}

	blog := &models.Blog{
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		Author:    req.Author,
		Published: req.Published,
	}

	// Cover image is optional
	if file, err := c.FormFile("cover"); err == nil {
		coverPath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store blog cover")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		blog.CoverPath = coverPath
	}

	if err := s.db.Create(blog).Error; err != nil {
		s.removeUpload(blog.CoverPath)
		s.logger.Error().Err(err).Msg("Failed to create blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog"})
		return
	}

	s.logger.Info().Str("blog_id", blog.ID).Str("slug", blog.Slug).Msg("Blog created")

	c.JSON(http.StatusCreated, blog)
}

// @Summary Update blog post
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} models.Blog
// @Router /api/blogs/{id} [put]
func (s *Server) updateBlog(c *gin.Context) {
	var blog models.Blog
	if err := models.FindByID(s.db, c.Param("id"), &blog); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Body != "" {
		blog.Body = req.Body
	}
	if req.Author != "" {
		blog.Author = req.Author
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}

	oldCover := ""
	if file, err := c.FormFile("cover"); err == nil {
		coverPath, err := s.saveUploadedImage(c, file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImageType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.Error().Err(err).Msg("Failed to store blog cover")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		oldCover = blog.CoverPath
		blog.CoverPath = coverPath
	}

	if err := s.db.Save(&blog).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog"})
		return
	}

	if oldCover != "" {
		s.removeUpload(oldCover)
	}

	c.JSON(http.StatusOK, blog)
}

// @Summary Delete blog post
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 204
// @Router /api/blogs/{id} [delete]
func (s *Server) deleteBlog(c *gin.Context) {
	var blog models.Blog
	if err := models.FindByID(s.db, c.Param("id"), &blog); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := s.db.Delete(&blog).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog"})
		return
	}

	s.removeUpload(blog.CoverPath)

	c.Status(http.StatusNoContent)
}
