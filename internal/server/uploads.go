package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrUnsupportedVideoType = errors.New("unsupported video type")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".m4v":  true,
}

// saveUploadedImage stores a multipart image under the uploads directory with a
// ULID-prefixed filename and returns the public path ("/uploads/<name>").
func (s *Server) saveUploadedImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	return s.saveUpload(c, file, allowedImageExtensions, ErrUnsupportedImageType)
}

// saveUploadedVideo is the video counterpart of saveUploadedImage.
func (s *Server) saveUploadedVideo(c *gin.Context, file *multipart.FileHeader) (string, error) {
	return s.saveUpload(c, file, allowedVideoExtensions, ErrUnsupportedVideoType)
}

func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader, allowed map[string]bool, unsupported error) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("%w: %s", unsupported, ext)
	}

	name := fmt.Sprintf("%s%s", ulid.Make().String(), ext)
	dst := filepath.Join(s.config.Uploads.Dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return "/uploads/" + name, nil
}

// removeUpload deletes a previously stored media file. Missing files are not
// an error: the record is the source of truth, the file is a cache of it.
func (s *Server) removeUpload(publicPath string) {
	name := strings.TrimPrefix(publicPath, "/uploads/")
	if name == "" || name == publicPath {
		return
	}

	if err := os.Remove(filepath.Join(s.config.Uploads.Dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", publicPath).Msg("Failed to remove uploaded media")
	}
}

// removeUploads is removeUpload over a gallery.
func (s *Server) removeUploads(publicPaths []string) {
	for _, p := range publicPaths {
		s.removeUpload(p)
	}
}
