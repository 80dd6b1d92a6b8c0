package routes

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"petshop-server/services"
)

var (
	storageOnce sync.Once
	storageSvc  *services.StorageService
	storageErr  error
)

// storage lazily initializes the shared Cloudinary client
func storage() (*services.StorageService, error) {
	storageOnce.Do(func() {
		storageSvc, storageErr = services.NewStorageService()
	})
	return storageSvc, storageErr
}

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// parseID reads the :id route param as uint
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePrice reads a non-negative decimal form field
func parsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}
