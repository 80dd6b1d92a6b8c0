package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"petshop-server/config"
	"petshop-server/database"
	"petshop-server/jobs"
	"petshop-server/middleware"
	"petshop-server/routes"
	ws "petshop-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// "petshop-server seed" loads demo data and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := runSeed(); err != nil {
			log.Fatal("Seeding failed: ", err)
		}
		return
	}

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS for the storefront and the dashboard
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Petshop server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Chat widget (shared AI service for HTTP and WebSocket)
	aiService := routes.InitChat()
	chatHandler := ws.NewChatHandler(aiService)
	router.GET("/api/v1/ws/chat", chatHandler.HandleChat)

	// API routes
	api := router.Group("/api/v1")
	{
		// Storefront reads and chat (no authentication required)
		routes.RegisterPublicRoutes(api)

		// Auth routes - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Admin dashboard routes (session + admin role required)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware())
		routes.RegisterAdminRoutes(adminRoutes)
	}

	// Start background maintenance
	discountJob := jobs.NewDiscountJob()
	discountJob.Start()
	defer discountJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
