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

// GetAddonServices returns all add-on services
func GetAddonServices(c *gin.Context) {
	var items []models.AddonService
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch addon services",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetAddonServiceBySlug returns one add-on service with its effective
// discount
func GetAddonServiceBySlug(c *gin.Context) {
	var item models.AddonService
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Addon service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addon service"})
		return
	}

	now := time.Now()
	data := gin.H{"addon_service": item}
	if discount, err := services.EffectiveDiscountFor(models.TargetAddon, item.ID, now); err == nil && discount != nil {
		data["discount"] = discount
		data["discounted_price"] = services.DiscountedPrice(item.Price, discount, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreateAddonService creates an add-on service from a multipart form
func CreateAddonService(c *gin.Context) {
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

	slug, err := services.UniqueSlug(name, &models.AddonService{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	item := models.AddonService{
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderAddons)
		if err != nil {
			log.Printf("❌ Addon image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		item.ImageURL = url
		item.ImagePublicID = publicID
	}

	if err := database.DB.Create(&item).Error; err != nil {
		log.Printf("❌ Failed to create addon service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create addon service"})
		return
	}

	log.Printf("✅ Addon service created: %s (ID: %d)", item.Name, item.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Addon service created successfully",
		"data":    item,
	})
}

// UpdateAddonService updates an add-on service
func UpdateAddonService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var item models.AddonService
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Addon service not found"})
		return
	}

	if name := c.PostForm("name"); name != "" && name != item.Name {
		slug, err := services.UniqueSlug(name, &models.AddonService{}, item.ID)
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderAddons)
		if err != nil {
			log.Printf("❌ Addon image upload failed: %v", err)
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
		log.Printf("❌ Failed to update addon service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update addon service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addon service updated successfully",
		"data":    item,
	})
}

// DeleteAddonService removes an add-on service
func DeleteAddonService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var item models.AddonService
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Addon service not found"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		log.Printf("❌ Failed to delete addon service: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete addon service"})
		return
	}

	if item.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), item.ImagePublicID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Addon service deleted successfully",
	})
}
