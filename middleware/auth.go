package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petshop-server/config"
	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/utils"
)

// sessionToken extracts the session token from the session cookie, falling
// back to a Bearer Authorization header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(config.AppConfig.Cookie.Name); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return token
}

// AuthMiddleware validates the session and sets the user in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please sign in",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			log.Printf("❌ Session token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid session",
				"message": "Session is invalid or expired",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User not found",
				"message": "User associated with session not found",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
	}
}

// AdminAuthMiddleware additionally requires the admin role
func AdminAuthMiddleware() gin.HandlerFunc {
	auth := AuthMiddleware()
	return func(c *gin.Context) {
		auth(c)
		if c.IsAborted() {
			return
		}

		user := c.MustGet("user").(models.User)
		if !user.IsAdmin() {
			log.Printf("❌ User %d is not admin, role: %s", user.ID, user.Role)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
