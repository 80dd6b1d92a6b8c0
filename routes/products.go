package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
)

// GetProducts returns visible products for the storefront. Supports
// ?category=<slug> and ?search=<substring> (case-insensitive).
func GetProducts(c *gin.Context) {
	query := database.DB.Preload("Category").Where("products.is_visible = ?", true)

	if categorySlug := c.Query("category"); categorySlug != "" {
		query = query.
			Joins("JOIN product_categories ON product_categories.id = products.category_id").
			Where("product_categories.slug = ?", categorySlug)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("products.name ILIKE ?", "%"+search+"%")
	}

	var products []models.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch products",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProductBySlug returns one product with its effective discount, if any
func GetProductBySlug(c *gin.Context) {
	var product models.Product
	err := database.DB.Preload("Category").
		Where("slug = ? AND is_visible = ?", c.Param("slug"), true).
		First(&product).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	now := time.Now()
	discount, err := services.EffectiveDiscountFor(models.TargetProduct, product.ID, now)
	if err != nil {
		log.Printf("⚠️ Failed to resolve discount for product %d: %v", product.ID, err)
	}

	data := gin.H{"product": product}
	if discount != nil {
		data["discount"] = discount
		data["discounted_price"] = services.DiscountedPrice(product.Price, discount, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetAllProducts returns every product for the admin dashboard, hidden ones
// included. Supports ?search=.
func GetAllProducts(c *gin.Context) {
	query := database.DB.Preload("Category")
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct creates a product from a multipart form with an optional
// image file
func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}

	categoryID, err := strconv.Atoi(c.PostForm("category_id"))
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid category_id is required"})
		return
	}

	price, ok := parsePrice(c.PostForm("price"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
		return
	}

	var category models.ProductCategory
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	slug, err := services.UniqueSlug(name, &models.Product{}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
		return
	}

	product := models.Product{
		CategoryID:  uint(categoryID),
		Name:        name,
		Slug:        slug,
		Description: c.PostForm("description"),
		Price:       price,
		IsVisible:   c.DefaultPostForm("is_visible", "true") != "false",
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderProducts)
		if err != nil {
			log.Printf("❌ Product image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		product.ImageURL = url
		product.ImagePublicID = publicID
	}

	if err := database.DB.Create(&product).Error; err != nil {
		log.Printf("❌ Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	log.Printf("✅ Product created: %s (ID: %d, slug: %s)", product.Name, product.ID, product.Slug)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct updates a product; a new image replaces and deletes the
// old stored file best-effort
func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if name := c.PostForm("name"); name != "" && name != product.Name {
		slug, err := services.UniqueSlug(name, &models.Product{}, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve slug"})
			return
		}
		product.Name = name
		product.Slug = slug
	}

	if raw := c.PostForm("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil || categoryID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		var category models.ProductCategory
		if err := database.DB.First(&category, categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		product.CategoryID = uint(categoryID)
	}

	if raw := c.PostForm("price"); raw != "" {
		price, ok := parsePrice(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative number"})
			return
		}
		product.Price = price
	}

	if description, exists := c.GetPostForm("description"); exists {
		product.Description = description
	}

	if raw, exists := c.GetPostForm("is_visible"); exists {
		product.IsVisible = raw != "false"
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
		url, publicID, err := store.UploadImage(context.Background(), header, services.FolderProducts)
		if err != nil {
			log.Printf("❌ Product image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}
		if product.ImagePublicID != "" {
			store.DeleteImageQuietly(context.Background(), product.ImagePublicID)
		}
		product.ImageURL = url
		product.ImagePublicID = publicID
	}

	if err := database.DB.Save(&product).Error; err != nil {
		log.Printf("❌ Failed to update product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// UpdateProductVisibility toggles storefront visibility
func UpdateProductVisibility(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		IsVisible *bool `json:"is_visible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_visible is required"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product.IsVisible = *req.IsVisible
	if err := database.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct removes a product and its stored image (best-effort)
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		log.Printf("❌ Failed to delete product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	if product.ImagePublicID != "" {
		if store, err := storage(); err == nil {
			store.DeleteImageQuietly(context.Background(), product.ImagePublicID)
		}
	}

	log.Printf("✅ Product deleted: %s (ID: %d)", product.Name, product.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}
