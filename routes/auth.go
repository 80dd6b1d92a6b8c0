package routes

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petshop-server/config"
	"petshop-server/database"
	"petshop-server/models"
	"petshop-server/services"
	"petshop-server/utils"
)

// setSessionCookie writes the session token as an HTTP-only cookie
func setSessionCookie(c *gin.Context, token string) {
	cookie := config.AppConfig.Cookie
	maxAge := config.AppConfig.JWT.ExpiryHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, maxAge, "/", cookie.Domain, cookie.Secure, true)
}

// clearSessionCookie expires the session cookie
func clearSessionCookie(c *gin.Context) {
	cookie := config.AppConfig.Cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", cookie.Domain, cookie.Secure, true)
}

// Login authenticates an admin and starts a cookie session
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Printf("❌ Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsActive {
		log.Printf("❌ Login attempt by inactive user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("❌ Invalid password for user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Failed to generate session token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	setSessionCookie(c, token)

	log.Printf("✅ User %d signed in", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// Logout ends the cookie session
func Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out",
	})
}

// GetCurrentUser returns the signed-in admin
func GetCurrentUser(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// generateResetCode produces a random 6-digit code
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := n.Text(10)
	for len(code) < 6 {
		code = "0" + code
	}
	return code, nil
}

// ForgotPassword starts the reset flow: generates a token plus a 6-digit
// code and mails the code. The response never reveals whether the email is
// registered: a token is returned either way, and one for an unknown email
// simply matches no stored record.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	resetToken := hex.EncodeToString(tokenBytes)

	accepted := gin.H{
		"success": true,
		"message": "If the address is registered, a reset code has been sent",
		"token":   resetToken,
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, accepted)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	code, err := generateResetCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate code"})
		return
	}

	// Expire any previous unused reset tokens for this email
	database.DB.Model(&models.PasswordResetToken{}).
		Where("email = ? AND used_at IS NULL", user.Email).
		Update("expires_at", time.Now())

	record := models.PasswordResetToken{
		Email:     user.Email,
		Token:     resetToken,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	if err := services.SendPasswordResetMail(user.Email, code); err != nil {
		log.Printf("⚠️ Failed to send reset mail to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, accepted)
}

// ResetPassword completes the reset flow with the token + code pair
func ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token, code and new_password (min 8 chars) are required"})
		return
	}

	var record models.PasswordResetToken
	if err := database.DB.Where("token = ?", req.Token).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid reset token"})
		return
	}

	if !record.Usable(time.Now()) || record.Code != req.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset code is invalid or expired"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", record.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	now := time.Now()
	user.PasswordHash = hash
	record.UsedAt = &now

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	if err := database.DB.Save(&record).Error; err != nil {
		log.Printf("⚠️ Failed to mark reset token used: %v", err)
	}

	log.Printf("✅ Password reset for user %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated, please sign in",
	})
}
