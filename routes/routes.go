package routes

import (
	"github.com/gin-gonic/gin"

	"petshop-server/middleware"
)

// RegisterPublicRoutes wires the storefront read endpoints and the chat
// proxy under the given group
func RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/categories", GetCategories)
	api.GET("/categories/:slug", GetCategoryBySlug)

	api.GET("/products", GetProducts)
	api.GET("/products/:slug", GetProductBySlug)

	api.GET("/branches", GetBranches)
	api.GET("/branches/:slug", GetBranchBySlug)

	api.GET("/grooming-services", GetGroomingServices)
	api.GET("/grooming-services/:slug", GetGroomingServiceBySlug)

	api.GET("/hotel-rooms", GetHotelRooms)
	api.GET("/hotel-rooms/:slug", GetHotelRoomBySlug)

	api.GET("/addon-services", GetAddonServices)
	api.GET("/addon-services/:slug", GetAddonServiceBySlug)

	api.GET("/photoshoot-packages", GetPhotoshootPackages)
	api.GET("/photoshoot-packages/:slug", GetPhotoshootPackageBySlug)

	api.GET("/discounts/active", GetActiveDiscounts)

	api.POST("/chat", Chat)
}

// RegisterAuthRoutes wires the session endpoints
func RegisterAuthRoutes(auth *gin.RouterGroup) {
	auth.POST("/login", Login)
	auth.POST("/logout", Logout)
	auth.POST("/forgot-password", ForgotPassword)
	auth.POST("/reset-password", ResetPassword)
	auth.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
}

// RegisterAdminRoutes wires the dashboard CRUD endpoints. The caller is
// expected to have attached AdminAuthMiddleware to the group.
func RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard/stats", GetDashboardStats)

	admin.POST("/categories", CreateCategory)
	admin.PUT("/categories/:id", UpdateCategory)
	admin.DELETE("/categories/:id", DeleteCategory)

	admin.GET("/products", GetAllProducts)
	admin.POST("/products", CreateProduct)
	admin.PUT("/products/:id", UpdateProduct)
	admin.PATCH("/products/:id/visibility", UpdateProductVisibility)
	admin.DELETE("/products/:id", DeleteProduct)

	admin.POST("/branches", CreateBranch)
	admin.PUT("/branches/:id", UpdateBranch)
	admin.DELETE("/branches/:id", DeleteBranch)

	admin.POST("/grooming-services", CreateGroomingService)
	admin.PUT("/grooming-services/:id", UpdateGroomingService)
	admin.DELETE("/grooming-services/:id", DeleteGroomingService)

	admin.POST("/hotel-rooms", CreateHotelRoom)
	admin.PUT("/hotel-rooms/:id", UpdateHotelRoom)
	admin.DELETE("/hotel-rooms/:id", DeleteHotelRoom)

	admin.POST("/addon-services", CreateAddonService)
	admin.PUT("/addon-services/:id", UpdateAddonService)
	admin.DELETE("/addon-services/:id", DeleteAddonService)

	admin.POST("/photoshoot-packages", CreatePhotoshootPackage)
	admin.PUT("/photoshoot-packages/:id", UpdatePhotoshootPackage)
	admin.DELETE("/photoshoot-packages/:id", DeletePhotoshootPackage)

	admin.GET("/discounts", GetAllDiscounts)
	admin.POST("/discounts", CreateDiscount)
	admin.PUT("/discounts/:id", UpdateDiscount)
	admin.DELETE("/discounts/:id", DeleteDiscount)
	admin.GET("/discounts/:id/target", GetDiscountTarget)
	admin.PUT("/discounts/:id/target", SetDiscountTarget)
	admin.DELETE("/discounts/:id/target", ClearDiscountTarget)
}
