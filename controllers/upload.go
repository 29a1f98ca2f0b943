package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxImageSize = 2 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Uploads stores images under dir and serves them below URLPrefix.
type Uploads struct {
	Dir       string
	URLPrefix string
	log       *zap.Logger
}

func NewUploads(dir, urlPrefix string, log *zap.Logger) *Uploads {
	return &Uploads{Dir: dir, URLPrefix: urlPrefix, log: log}
}

// saveImage stores the multipart file of field under folder and returns its public path.
// It answers the request itself and returns false when the upload is rejected.
func (u *Uploads) saveImage(c *gin.Context, field, folder string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"errors": gin.H{field: "Choose an image to upload"},
		})
		return "", false
	}
	if file.Size > maxImageSize {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"errors": gin.H{field: "Image must be 2 MB or smaller"},
		})
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open upload: %w", err))
		return "", false
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	ext, ok := imageTypes[http.DetectContentType(head[:n])]
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"errors": gin.H{field: "Only JPG, PNG or WEBP images are allowed"},
		})
		return "", false
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(u.Dir, folder, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		respondError(c, fmt.Errorf("failed to create upload dir: %w", err))
		return "", false
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, fmt.Errorf("failed to save upload: %w", err))
		return "", false
	}
	return path.Join(u.URLPrefix, folder, name), true
}

// remove deletes a previously stored image by its public path.
func (u *Uploads) remove(publicPath string) {
	if publicPath == "" || !strings.HasPrefix(publicPath, u.URLPrefix+"/") {
		return
	}
	rel := strings.TrimPrefix(publicPath, u.URLPrefix+"/")
	if strings.Contains(rel, "..") {
		return
	}
	if err := os.Remove(filepath.Join(u.Dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		u.log.Warn("failed to remove old upload", zap.String("path", publicPath), zap.Error(err))
	}
}
