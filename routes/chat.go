package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"petshop-server/services"
)

var chatService *services.AIService

// InitChat creates the shared AI service used by the HTTP chat endpoint
// and the chat widget socket
func InitChat() *services.AIService {
	chatService = services.NewAIService()
	return chatService
}

// Chat answers one widget message over plain HTTP
func Chat(c *gin.Context) {
	var req struct {
		Message string              `json:"message" binding:"required"`
		History []services.ChatTurn `json:"history"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := chatService.Reply(req.Message, req.History)
	if err != nil {
		log.Printf("❌ Chat reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate a reply"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"reply": reply},
	})
}
