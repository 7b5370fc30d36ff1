package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

const (
	openRouterDefaultModel = "meta-llama/llama-3-8b-instruct"
	openRouterURL          = "https://openrouter.ai/api/v1/chat/completions"
)

// OpenRouterProvider generates answers through the OpenRouter aggregator
// API.
type OpenRouterProvider struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

var _ Provider = (*OpenRouterProvider)(nil)

// openRouterError represents an error response from the OpenRouter API.
type openRouterError struct {
	Error struct {
		Message  string `json:"message"`
		Code     int    `json:"code"`
		Metadata struct {
			Raw          string `json:"raw"`
			ProviderName string `json:"provider_name"`
		} `json:"metadata"`
	} `json:"error"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// NewOpenRouterProvider creates an OpenRouter-backed provider.
func NewOpenRouterProvider(apiKey string) *OpenRouterProvider {
	return &OpenRouterProvider{
		apiKey: apiKey,
		url:    openRouterURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Generous timeout for LLM responses
		},
	}
}

func (p *OpenRouterProvider) ID() string { return "openrouter" }

func (p *OpenRouterProvider) Confidence() float64 { return SecondaryConfidence }

func (p *OpenRouterProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{
		ID:          "openrouter",
		Name:        "OpenRouter",
		Description: "Access to many models through one API",
		Models: []core.ModelInfo{
			{ID: "meta-llama/llama-3-8b-instruct", Name: "Llama 3 8B", Description: "Open model, good quality", Cost: "Free"},
			{ID: "mistralai/mistral-7b-instruct", Name: "Mistral 7B", Description: "Fast open model", Cost: "Free"},
			{ID: "anthropic/claude-3-haiku", Name: "Claude 3 Haiku (via OpenRouter)", Description: "Fast premium model", Cost: "Low"},
		},
		DefaultModel: openRouterDefaultModel,
	}
}

func (p *OpenRouterProvider) Generate(ctx context.Context, prompt Prompt, model string) (string, string, error) {
	if model == "" {
		model = openRouterDefaultModel
	}

	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal request: %w", err)
	}

	logger.AIDebug("Sending request to OpenRouter model '%s'", model)

	req, err := http.NewRequestWithContext(ctx, "POST", p.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for an error payload regardless of status code.
	var apiErr openRouterError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		if apiErr.Error.Metadata.ProviderName != "" {
			return "", "", fmt.Errorf("OpenRouter API error (%s): %s", apiErr.Error.Metadata.ProviderName, apiErr.Error.Message)
		}
		return "", "", fmt.Errorf("OpenRouter API error: %s (code: %d)", apiErr.Error.Message, apiErr.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("OpenRouter API HTTP error (status %d): %s", resp.StatusCode, string(body))
	}

	var openRouterResp struct {
		Choices []struct {
			FinishReason string      `json:"finish_reason"`
			Message      chatMessage `json:"message"`
		} `json:"choices"`
		Model string `json:"model"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage,omitempty"`
	}
	if err := json.Unmarshal(body, &openRouterResp); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(openRouterResp.Choices) == 0 {
		return "", "", fmt.Errorf("OpenRouter API returned no choices")
	}

	if openRouterResp.Usage.TotalTokens > 0 {
		logger.AIInfo("OpenRouter usage - Prompt: %d, Completion: %d, Total: %d tokens. Finish reason: %s",
			openRouterResp.Usage.PromptTokens,
			openRouterResp.Usage.CompletionTokens,
			openRouterResp.Usage.TotalTokens,
			openRouterResp.Choices[0].FinishReason,
		)
	}

	return openRouterResp.Choices[0].Message.Content, model, nil
}
