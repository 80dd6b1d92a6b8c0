package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChatPrompt(t *testing.T) {
	catalog := "Products:\n- Royal Canin Adult: 250000 IDR\n"

	t.Run("includes catalog and message", func(t *testing.T) {
		prompt := BuildChatPrompt("Do you have dog food?", catalog, nil)

		assert.Contains(t, prompt, "Royal Canin Adult")
		assert.Contains(t, prompt, "Visitor: Do you have dog food?")
		assert.NotContains(t, prompt, "Conversation so far")
	})

	t.Run("includes conversation history in order", func(t *testing.T) {
		history := []ChatTurn{
			{Role: "user", Content: "Hi there"},
			{Role: "assistant", Content: "Hello! How can I help?"},
		}
		prompt := BuildChatPrompt("What about cats?", catalog, history)

		assert.Contains(t, prompt, "Conversation so far")
		assert.Contains(t, prompt, "user: Hi there")
		assert.Contains(t, prompt, "assistant: Hello! How can I help?")
		assert.Less(t,
			strings.Index(prompt, "user: Hi there"),
			strings.Index(prompt, "assistant: Hello! How can I help?"))
	})

	t.Run("message comes after history", func(t *testing.T) {
		history := []ChatTurn{{Role: "user", Content: "earlier question"}}
		prompt := BuildChatPrompt("new question", catalog, history)

		assert.Less(t,
			strings.Index(prompt, "earlier question"),
			strings.Index(prompt, "Visitor: new question"))
	})
}
