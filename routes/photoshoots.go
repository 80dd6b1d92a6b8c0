package routes

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// parseFeatures reads the ordered feature list from the multipart form.
// Accepts repeated "features" fields or a single JSON array string.
func parseFeatures(c *gin.Context) []string {
	values := c.PostFormArray("features")
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(values[0]), &parsed); err == nil {
			return parsed
		}
	}
	return values
}

// GetPhotoshootPackages returns all photoshoot packages
func GetPhotoshootPackages(c *gin.Context) {
	var packages []models.PhotoshootPackage
	if err := database.DB.Order("price ASC").Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch photoshoot packages",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    packages,
	})
}

// GetPhotoshootPackageBySlug returns one package with its effective
// discount
func GetPhotoshootPackageBySlug(c *gin.Context) {
	var pkg models.PhotoshootPackage
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&pkg).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photoshoot package not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photoshoot package"})
		return
	}

	now := time.Now()
	data := gin.H{"photoshoot_package": pkg}
	if discount, err := services.EffectiveDiscountFor(models.TargetPhotoshoot, pkg.ID, now); err == nil && discount != nil {
		data["discount"] = discount
		data["discounted_price"] = services.DiscountedPrice(pkg.Price, discount, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatePhotoshootPackage creates a package from a multipart form
func CreatePhotoshootPackage(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Package title is required"})
		return
	}

	price, ok := parsePrice(c.PostForm("price"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
		return
	}

	slug, err := services.UniqueSlug(title, &models.PhotoshootPackage{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	pkg := models.PhotoshootPackage{
		Title:       title,
		Slug:        slug,
		Description: c.PostForm("description"),
		Price:       price,
		Features:    parseFeatures(c),
	}

	if header, err := c.FormFile("image"); err == nil {
		if !validateImageFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
			return
		}
		store, err := storage()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage not configured"})
			return
		}
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderPhotoshoots)
		if err != nil {
			log.Printf("❌ Photoshoot image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		pkg.ImageURL = url
		pkg.ImagePublicID = publicID
	}

	if err := database.DB.Create(&pkg).Error; err != nil {
		log.Printf("❌ Failed to create photoshoot package: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create photoshoot package"})
		return
	}

	log.Printf("✅ Photoshoot package created: %s (ID: %d)", pkg.Title, pkg.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Photoshoot package created successfully",
		"data":    pkg,
	})
}

// UpdatePhotoshootPackage updates a package
func UpdatePhotoshootPackage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID"})
		return
	}

	var pkg models.PhotoshootPackage
	if err := database.DB.First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photoshoot package not found"})
		return
	}

	if title := c.PostForm("title"); title != "" && title != pkg.Title {
		slug, err := services.UniqueSlug(title, &models.PhotoshootPackage{}, pkg.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		pkg.Title = title
		pkg.Slug = slug
	}

	if description, exists := c.GetPostForm("description"); exists {
		pkg.Description = description
	}

	if raw := c.PostForm("price"); raw != "" {
		price, ok := parsePrice(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
			return
		}
		pkg.Price = price
	}

	if _, exists := c.GetPostForm("features"); exists {
		pkg.Features = parseFeatures(c)
	}

	if header, err := c.FormFile("image"); err == nil {
		if !validateImageFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file"})
			return
		}
		store, err := storage()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image storage not configured"})
			return
		}
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderPhotoshoots)
		if err != nil {
			log.Printf("❌ Photoshoot image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if pkg.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), pkg.ImagePublicID)
		}
		pkg.ImageURL = url
		pkg.ImagePublicID = publicID
	}

	if err := database.DB.Save(&pkg).Error; err != nil {
		log.Printf("❌ Failed to update photoshoot package: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photoshoot package"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Photoshoot package updated successfully",
		"data":    pkg,
	})
}

// DeletePhotoshootPackage removes a package
func DeletePhotoshootPackage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID"})
		return
	}

	var pkg models.PhotoshootPackage
	if err := database.DB.First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photoshoot package not found"})
		return
	}

	if err := database.DB.Delete(&pkg).Error; err != nil {
		log.Printf("❌ Failed to delete photoshoot package: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photoshoot package"})
		return
	}

	if pkg.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), pkg.ImagePublicID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Photoshoot package deleted successfully",
	})
}
