package routes

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// GetBranches returns all branches
func GetBranches(c *gin.Context) {
	var branches []models.Branch
	if err := database.DB.Order("name ASC").Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch branches",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    branches,
	})
}

// GetBranchBySlug returns one branch
func GetBranchBySlug(c *gin.Context) {
	var branch models.Branch
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&branch).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    branch,
	})
}

// CreateBranch creates a branch from a multipart form
func CreateBranch(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch name is required"})
		return
	}

	slug, err := services.UniqueSlug(name, &models.Branch{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	branch := models.Branch{
		Name:          name,
		Slug:          slug,
		Description:   c.PostForm("description"),
		MapLink:       c.PostForm("map_link"),
		ContactNumber: c.PostForm("contact_number"),
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderBranches)
		if err != nil {
			log.Printf("❌ Branch image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		branch.ImageURL = url
		branch.ImagePublicID = publicID
	}

	if err := database.DB.Create(&branch).Error; err != nil {
		log.Printf("❌ Failed to create branch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}

	log.Printf("✅ Branch created: %s (ID: %d)", branch.Name, branch.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Branch created successfully",
		"data":    branch,
	})
}

// UpdateBranch updates a branch
func UpdateBranch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var branch models.Branch
	if err := database.DB.First(&branch, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	if name := c.PostForm("name"); name != "" && name != branch.Name {
		slug, err := services.UniqueSlug(name, &models.Branch{}, branch.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		branch.Name = name
		branch.Slug = slug
	}

	if description, exists := c.GetPostForm("description"); exists {
		branch.Description = description
	}
	if mapLink, exists := c.GetPostForm("map_link"); exists {
		branch.MapLink = mapLink
	}
	if contact, exists := c.GetPostForm("contact_number"); exists {
		branch.ContactNumber = contact
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderBranches)
		if err != nil {
			log.Printf("❌ Branch image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if branch.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), branch.ImagePublicID)
		}
		branch.ImageURL = url
		branch.ImagePublicID = publicID
	}

	if err := database.DB.Save(&branch).Error; err != nil {
		log.Printf("❌ Failed to update branch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Branch updated successfully",
		"data":    branch,
	})
}

// DeleteBranch removes a branch and its stored image (best-effort)
func DeleteBranch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var branch models.Branch
	if err := database.DB.First(&branch, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	if err := database.DB.Delete(&branch).Error; err != nil {
		log.Printf("❌ Failed to delete branch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}

	if branch.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), branch.ImagePublicID)
		}
	}

	log.Printf("✅ Branch deleted: %s (ID: %d)", branch.Name, branch.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Branch deleted successfully",
	})
}
