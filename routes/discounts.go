package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// parseDate reads a YYYY-MM-DD form field as a UTC calendar date
func parseDate(raw string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GetActiveDiscounts returns the discounts effective today, with their
// target names resolved. Discounts whose target row was deleted are
// skipped.
func GetActiveDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := database.DB.Where("is_active = ?", true).Order("end_date ASC").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
		return
	}

	now := time.Now()
	data := make([]gin.H, 0, len(discounts))
	for i := range discounts {
		d := &discounts[i]
		if !services.IsDiscountEffective(d, now) {
			continue
		}

		entry := gin.H{"discount": d}
		target, err := services.GetTarget(d.ID)
		if err != nil {
			log.Printf("⚠️ Failed to load target for discount %d: %v", d.ID, err)
			continue
		}
		if target != nil {
			name, found, err := services.LookupTargetName(target.TargetType, target.TargetID)
			if err != nil {
				log.Printf("⚠️ Failed to resolve target name for discount %d: %v", d.ID, err)
				continue
			}
			if !found {
				// Dangling reference, hide the discount from the storefront
				continue
			}
			entry["target_type"] = target.TargetType
			entry["target_id"] = target.TargetID
			entry["target_name"] = name
		}
		data = append(data, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetAllDiscounts returns every discount for the admin dashboard, each
// annotated with whether it is effective today
func GetAllDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := database.DB.Order("created_at DESC").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
		return
	}

	now := time.Now()
	data := make([]gin.H, 0, len(discounts))
	for i := range discounts {
		d := &discounts[i]
		data = append(data, gin.H{
			"discount":     d,
			"is_effective": services.IsDiscountEffective(d, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreateDiscount creates a discount from a multipart form
func CreateDiscount(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount title is required"})
		return
	}

	percent, err := strconv.ParseFloat(c.PostForm("discount_percent"), 64)
	if err != nil || percent < 0 || percent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percent must be between 0 and 100"})
		return
	}

	startDate, ok := parseDate(c.PostForm("start_date"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, ok := parseDate(c.PostForm("end_date"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}

	slug, err := services.UniqueSlug(title, &models.Discount{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	discount := models.Discount{
		Title:           title,
		Slug:            slug,
		Description:     c.PostForm("description"),
		DiscountPercent: percent,
		StartDate:       startDate,
		EndDate:         endDate,
		IsActive:        c.DefaultPostForm("is_active", "true") != "false",
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderDiscounts)
		if err != nil {
			log.Printf("❌ Discount image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		discount.ImageURL = url
		discount.ImagePublicID = publicID
	}

	if err := database.DB.Create(&discount).Error; err != nil {
		log.Printf("❌ Failed to create discount: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount"})
		return
	}

	log.Printf("✅ Discount created: %s (ID: %d, %v%%)", discount.Title, discount.ID, discount.DiscountPercent)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Discount created successfully",
		"data":    discount,
	})
}

// UpdateDiscount updates a discount
func UpdateDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	if title := c.PostForm("title"); title != "" && title != discount.Title {
		slug, err := services.UniqueSlug(title, &models.Discount{}, discount.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		discount.Title = title
		discount.Slug = slug
	}

	if description, exists := c.GetPostForm("description"); exists {
		discount.Description = description
	}

	if raw := c.PostForm("discount_percent"); raw != "" {
		percent, err := strconv.ParseFloat(raw, 64)
		if err != nil || percent < 0 || percent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percent must be between 0 and 100"})
			return
		}
		discount.DiscountPercent = percent
	}

	if raw := c.PostForm("start_date"); raw != "" {
		startDate, ok := parseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		discount.StartDate = startDate
	}

	if raw := c.PostForm("end_date"); raw != "" {
		endDate, ok := parseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		discount.EndDate = endDate
	}

	if discount.EndDate.Before(discount.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}

	if raw, exists := c.GetPostForm("is_active"); exists {
		discount.IsActive = raw != "false"
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderDiscounts)
		if err != nil {
			log.Printf("❌ Discount image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if discount.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), discount.ImagePublicID)
		}
		discount.ImageURL = url
		discount.ImagePublicID = publicID
	}

	if err := database.DB.Save(&discount).Error; err != nil {
		log.Printf("❌ Failed to update discount: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Discount updated successfully",
		"data":    discount,
	})
}

// DeleteDiscount removes a discount, its target association and its stored
// image (best-effort)
func DeleteDiscount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	if err := services.DetachTarget(discount.ID); err != nil {
		log.Printf("⚠️ Failed to detach target for discount %d: %v", discount.ID, err)
	}

	if err := database.DB.Delete(&discount).Error; err != nil {
		log.Printf("❌ Failed to delete discount: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount"})
		return
	}

	if discount.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), discount.ImagePublicID)
		}
	}

	log.Printf("✅ Discount deleted: %s (ID: %d)", discount.Title, discount.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Discount deleted successfully",
	})
}

// SetDiscountTarget points a discount at a single catalog row, replacing
// any previous association
func SetDiscountTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var req struct {
		TargetType string `json:"target_type" binding:"required"`
		TargetID   uint   `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_type and target_id are required"})
		return
	}

	targetType := models.TargetType(req.TargetType)
	if !targetType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target_type"})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	exists, err := services.TargetExists(targetType, req.TargetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify target"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
		return
	}

	if err := services.AttachTarget(discount.ID, targetType, req.TargetID); err != nil {
		log.Printf("❌ Failed to attach target to discount %d: %v", discount.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set discount target"})
		return
	}

	log.Printf("✅ Discount %d now targets %s %d", discount.ID, targetType, req.TargetID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Discount target set successfully",
	})
}

// GetDiscountTarget returns a discount's current target with its resolved
// name, or null when none is attached
func GetDiscountTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	target, err := services.GetTarget(discount.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount target"})
		return
	}
	if target == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
		return
	}

	name, found, err := services.LookupTargetName(target.TargetType, target.TargetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve target name"})
		return
	}

	data := gin.H{
		"target_type": target.TargetType,
		"target_id":   target.TargetID,
	}
	if found {
		data["target_name"] = name
	} else {
		data["target_name"] = nil // target row was deleted
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// ClearDiscountTarget removes a discount's target association
func ClearDiscountTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	if err := services.DetachTarget(discount.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear discount target"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Discount target cleared",
	})
}
