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
	geminiDefaultModel = "gemini-pro"
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
)

// GeminiProvider generates answers through the Google Generative Language
// API.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Provider = (*GeminiProvider)(nil)

// geminiError represents an error response from the Gemini API.
type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature,omitempty"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *GeminiProvider) ID() string { return "gemini" }

func (p *GeminiProvider) Confidence() float64 { return SecondaryConfidence }

func (p *GeminiProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{
		ID:          "gemini",
		Name:        "Google Gemini",
		Description: "Google's multimodal AI models",
		Models: []core.ModelInfo{
			{ID: "gemini-pro", Name: "Gemini Pro", Description: "General-purpose model", Cost: "Medium"},
		},
		DefaultModel: geminiDefaultModel,
	}
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt Prompt, model string) (string, string, error) {
	if model == "" {
		model = geminiDefaultModel
	}

	// Gemini has no separate system slot on this endpoint; fold the system
	// instructions into the user turn.
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt.System + "\n\n" + prompt.User}},
			},
		},
	}
	reqBody.GenerationConfig.Temperature = defaultTemperature
	reqBody.GenerationConfig.MaxOutputTokens = defaultMaxTokens

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.baseURL, model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
	var apiErr geminiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return "", "", fmt.Errorf("Gemini API error (%s): %s", apiErr.Error.Status, apiErr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("Gemini API HTTP error (status %d): %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", "", fmt.Errorf("Gemini API returned no candidates")
	}

	logger.AIDebug("Gemini answered with %s. Finish reason: %s", model, geminiResp.Candidates[0].FinishReason)
	return geminiResp.Candidates[0].Content.Parts[0].Text, model, nil
}
