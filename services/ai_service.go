package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"petshop-server/config"
	"petshop-server/database"
	"petshop-server/models"
)

// AIService proxies the storefront chat widget to the Gemini
// generative-language API, with the live catalog as context.
type AIService struct {
	apiKey string
	model  string
	client *http.Client
}

type GeminiRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text,omitempty"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

// ChatTurn is one prior message of the widget conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

func NewAIService() *AIService {
	cfg := config.AppConfig.Gemini
	if cfg.APIKey == "" {
		log.Printf("⚠️ GEMINI_API_KEY not set, chat widget will be disabled")
	}

	return &AIService{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Reply answers one widget message. History is optional and replayed into
// the prompt so the model keeps conversational context.
func (ai *AIService) Reply(message string, history []ChatTurn) (string, error) {
	if ai.apiKey == "" {
		return "The shop assistant is currently unavailable. Please contact us directly.", nil
	}

	catalogContext, err := ai.buildCatalogContext(time.Now())
	if err != nil {
		log.Printf("⚠️ Failed to build catalog context: %v", err)
		catalogContext = ""
	}

	prompt := BuildChatPrompt(message, catalogContext, history)

	reply, err := ai.callGeminiAPI(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}
	return reply, nil
}

// buildCatalogContext summarizes the live catalog for the prompt:
// categories, a product sample, branches and currently effective discounts.
func (ai *AIService) buildCatalogContext(asOf time.Time) (string, error) {
	var categories []models.ProductCategory
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return "", err
	}

	var products []models.Product
	if err := database.DB.Where("is_visible = ?", true).Order("created_at DESC").Limit(20).Find(&products).Error; err != nil {
		return "", err
	}

	var branches []models.Branch
	if err := database.DB.Order("name ASC").Find(&branches).Error; err != nil {
		return "", err
	}

	var discounts []models.Discount
	if err := database.DB.Where("is_active = ?", true).Find(&discounts).Error; err != nil {
		return "", err
	}

	context := "Product categories:\n"
	for _, c := range categories {
		context += fmt.Sprintf("- %s: %s\n", c.Name, c.Description)
	}

	context += "\nProducts:\n"
	for _, p := range products {
		context += fmt.Sprintf("- %s: %.0f\n", p.Name, p.Price)
	}

	context += "\nBranches:\n"
	for _, b := range branches {
		context += fmt.Sprintf("- %s (%s)\n", b.Name, b.ContactNumber)
	}

	context += "\nCurrent promotions:\n"
	for _, d := range discounts {
		if !IsDiscountEffective(&d, asOf) {
			continue
		}
		line := fmt.Sprintf("- %s: %.0f%% off", d.Title, d.DiscountPercent)
		if target, err := GetTarget(d.ID); err == nil && target != nil {
			if name, ok, err := LookupTargetName(target.TargetType, target.TargetID); err == nil && ok {
				line += " " + name
			}
		}
		context += line + fmt.Sprintf(" until %s\n", d.EndDate.Format("2006-01-02"))
	}

	return context, nil
}

// BuildChatPrompt assembles the fixed assistant preamble, catalog context,
// conversation history and the new user message into one Gemini prompt.
func BuildChatPrompt(message, catalogContext string, history []ChatTurn) string {
	prompt := `You are the friendly assistant of a pet shop.
Your role is to help visitors with questions about our products, grooming services, pet hotel rooms, photoshoot packages, branches and current promotions.

IMPORTANT RULES:
1. ONLY answer questions about the pet shop and pet care
2. Keep responses under 80 words
3. Use ONLY the catalog data provided below; never invent products or prices
4. If off-topic, politely redirect to pet shop topics
5. Respond in the language the visitor writes in

Catalog:
` + catalogContext + "\n"

	if len(history) > 0 {
		prompt += "\nConversation so far:\n"
		for _, turn := range history {
			prompt += fmt.Sprintf("%s: %s\n", turn.Role, turn.Content)
		}
	}

	prompt += "\nVisitor: " + message + "\n"
	return prompt
}

func (ai *AIService) callGeminiAPI(prompt string) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", ai.model, ai.apiKey)

	request := GeminiRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	resp, err := ai.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
