package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// GetDashboardStats returns row counts per collection plus the number of
// discounts effective today
func GetDashboardStats(c *gin.Context) {
	counts := map[string]interface{}{}

	tables := []struct {
		key   string
		model interface{}
	}{
		{"categories", &models.ProductCategory{}},
		{"products", &models.Product{}},
		{"branches", &models.Branch{}},
		{"grooming_services", &models.GroomingService{}},
		{"hotel_rooms", &models.HotelRoom{}},
		{"addon_services", &models.AddonService{}},
		{"photoshoot_packages", &models.PhotoshootPackage{}},
		{"discounts", &models.Discount{}},
	}

	for _, t := range tables {
		var count int64
		if err := database.DB.Model(t.model).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
			return
		}
		counts[t.key] = count
	}

	var active []models.Discount
	if err := database.DB.Where("is_active = ?", true).Find(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}
	now := time.Now()
	effective := 0
	for i := range active {
		if services.IsDiscountEffective(&active[i], now) {
			effective++
		}
	}
	counts["effective_discounts"] = effective

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counts,
	})
}
