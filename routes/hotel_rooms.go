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

// GetHotelRooms returns all hotel room types
func GetHotelRooms(c *gin.Context) {
	var rooms []models.HotelRoom
	if err := database.DB.Order("price ASC").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch hotel rooms",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rooms,
	})
}

// GetHotelRoomBySlug returns one hotel room with its effective discount
func GetHotelRoomBySlug(c *gin.Context) {
	var room models.HotelRoom
	err := database.DB.Where("slug = ?", c.Param("slug")).First(&room).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hotel room"})
		return
	}

	now := time.Now()
	data := gin.H{"hotel_room": room}
	if discount, err := services.EffectiveDiscountFor(models.TargetHotel, room.ID, now); err == nil && discount != nil {
		data["discount"] = discount
		data["discounted_price"] = services.DiscountedPrice(room.Price, discount, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreateHotelRoom creates a hotel room from a multipart form
func CreateHotelRoom(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room name is required"})
		return
	}

	price, ok := parsePrice(c.PostForm("price"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
		return
	}

	slug, err := services.UniqueSlug(name, &models.HotelRoom{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	room := models.HotelRoom{
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderHotelRooms)
		if err != nil {
			log.Printf("❌ Hotel room image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		room.ImageURL = url
		room.ImagePublicID = publicID
	}

	if err := database.DB.Create(&room).Error; err != nil {
		log.Printf("❌ Failed to create hotel room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hotel room"})
		return
	}

	log.Printf("✅ Hotel room created: %s (ID: %d)", room.Name, room.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Hotel room created successfully",
		"data":    room,
	})
}

// UpdateHotelRoom updates a hotel room
func UpdateHotelRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var room models.HotelRoom
	if err := database.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel room not found"})
		return
	}

	if name := c.PostForm("name"); name != "" && name != room.Name {
		slug, err := services.UniqueSlug(name, &models.HotelRoom{}, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		room.Name = name
		room.Slug = slug
	}

	if description, exists := c.GetPostForm("description"); exists {
		room.Description = description
	}

	if raw := c.PostForm("price"); raw != "" {
		price, ok := parsePrice(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
			return
		}
		room.Price = price
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderHotelRooms)
		if err != nil {
			log.Printf("❌ Hotel room image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if room.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), room.ImagePublicID)
		}
		room.ImageURL = url
		room.ImagePublicID = publicID
	}

	if err := database.DB.Save(&room).Error; err != nil {
		log.Printf("❌ Failed to update hotel room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hotel room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Hotel room updated successfully",
		"data":    room,
	})
}

// DeleteHotelRoom removes a hotel room
func DeleteHotelRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var room models.HotelRoom
	if err := database.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel room not found"})
		return
	}

	if err := database.DB.Delete(&room).Error; err != nil {
		log.Printf("❌ Failed to delete hotel room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hotel room"})
		return
	}

	if room.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), room.ImagePublicID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Hotel room deleted successfully",
	})
}
