package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"petshop-server/services"
)

var chatUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer
	},
}

// ChatHandler serves the storefront chat widget over a WebSocket. Each
// connection is independent; the widget sends JSON messages and receives
// AI replies on the same connection.
type ChatHandler struct {
	aiService *services.AIService
}

func NewChatHandler(aiService *services.AIService) *ChatHandler {
	return &ChatHandler{aiService: aiService}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("🔌 Chat widget connected from %s", c.ClientIP())

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("🔌 Chat widget disconnected: %v", err)
			return
		}

		h.handleMessage(conn, msg)
	}
}

func (h *ChatHandler) handleMessage(conn *websocket.Conn, msg map[string]interface{}) {
	msgType, ok := msg["type"].(string)
	if !ok {
		log.Printf("⚠️ Invalid chat message type")
		return
	}

	switch msgType {
	case "user_input":
		h.handleUserInput(conn, msg)
	case "ping":
		h.sendMessage(conn, map[string]interface{}{
			"type":      "pong",
			"timestamp": time.Now().Unix(),
		})
	default:
		log.Printf("⚠️ Unknown chat message type: %s", msgType)
	}
}

func (h *ChatHandler) handleUserInput(conn *websocket.Conn, msg map[string]interface{}) {
	message, _ := msg["message"].(string)
	if message == "" {
		h.sendError(conn, "Message is required")
		return
	}

	// Convert conversation history
	var history []services.ChatTurn
	if rawHistory, ok := msg["history"].([]interface{}); ok {
		for _, raw := range rawHistory {
			if turn, ok := raw.(map[string]interface{}); ok {
				role, _ := turn["role"].(string)
				content, _ := turn["content"].(string)
				history = append(history, services.ChatTurn{Role: role, Content: content})
			}
		}
	}

	reply, err := h.aiService.Reply(message, history)
	if err != nil {
		log.Printf("❌ Chat reply failed: %v", err)
		h.sendError(conn, "Failed to process your request. Please try again.")
		return
	}

	h.sendMessage(conn, map[string]interface{}{
		"type": "ai_response",
		"text": reply,
	})
}

func (h *ChatHandler) sendError(conn *websocket.Conn, errorMsg string) {
	h.sendMessage(conn, map[string]interface{}{
		"type":  "ai_error",
		"error": errorMsg,
	})
}

func (h *ChatHandler) sendMessage(conn *websocket.Conn, msg map[string]interface{}) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("❌ WebSocket write error: %v", err)
	}
}
