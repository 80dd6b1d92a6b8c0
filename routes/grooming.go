package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// GetGroomingServices returns all grooming services
func GetGroomingServices(c *gin.Context) {
	var items []models.GroomingService
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch grooming services",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetGroomingServiceBySlug returns one grooming service with its effective
// discount, if any
func GetGroomingServiceBySlug(c *gin.Context) {
	var item models.GroomingService
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grooming service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grooming service"})
		return
	}

	now := time.Now()
	data := gin.H{"grooming_service": item}
	if discount, err := services.EffectiveDiscountFor(models.TargetGrooming, item.ID, now); err == nil && discount != nil {
		data["discount"] = discount
		data["discounted_price"] = services.DiscountedPrice(item.Price, discount, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreateGroomingService creates a grooming service from a multipart form
func CreateGroomingService(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service name is required"})
		return
	}

	price, ok := parsePrice(c.PostForm("price"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
		return
	}

	slug, err := services.UniqueSlug(name, &models.GroomingService{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	item := models.GroomingService{
		Name:        name,
		Slug:        slug,
		Description: c.PostForm("description"),
		Price:       price,
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderGrooming)
		if err != nil {
			log.Printf("❌ Grooming image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		item.ImageURL = url
		item.ImagePublicID = publicID
	}

	if err := database.DB.Create(&item).Error; err != nil {
		log.Printf("❌ Failed to create grooming service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grooming service"})
		return
	}

	log.Printf("✅ Grooming service created: %s (ID: %d)", item.Name, item.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Grooming service created successfully",
		"data":    item,
	})
}

// UpdateGroomingService updates a grooming service
func UpdateGroomingService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var item models.GroomingService
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grooming service not found"})
		return
	}

	if name := c.PostForm("name"); name != "" && name != item.Name {
		slug, err := services.UniqueSlug(name, &models.GroomingService{}, item.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		item.Name = name
		item.Slug = slug
	}

	if description, exists := c.GetPostForm("description"); exists {
		item.Description = description
	}

	if raw := c.PostForm("price"); raw != "" {
		price, ok := parsePrice(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
			return
		}
		item.Price = price
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderGrooming)
		if err != nil {
			log.Printf("❌ Grooming image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if item.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), item.ImagePublicID)
		}
		item.ImageURL = url
		item.ImagePublicID = publicID
	}

	if err := database.DB.Save(&item).Error; err != nil {
		log.Printf("❌ Failed to update grooming service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update grooming service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Grooming service updated successfully",
		"data":    item,
	})
}

// DeleteGroomingService removes a grooming service
func DeleteGroomingService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var item models.GroomingService
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grooming service not found"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		log.Printf("❌ Failed to delete grooming service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete grooming service"})
		return
	}

	if item.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), item.ImagePublicID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Grooming service deleted successfully",
	})
}
