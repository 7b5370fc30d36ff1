package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

const anthropicDefaultModel = "claude-3-sonnet-20240229"

// AnthropicProvider generates answers through the Anthropic messages API.
type AnthropicProvider struct {
	client anthropic.Client
}

var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates an Anthropic-backed provider.
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{client: anthropic.NewClient(option.WithAPIKey(apiKey))}
}

func (p *AnthropicProvider) ID() string { return "anthropic" }

func (p *AnthropicProvider) Confidence() float64 { return PrimaryConfidence }

func (p *AnthropicProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{
		ID:          "anthropic",
		Name:        "Anthropic Claude",
		Description: "Helpful and safety-focused models from Anthropic",
		Models: []core.ModelInfo{
			{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus", Description: "Most capable model", Cost: "High"},
			{ID: "claude-3-sonnet-20240229", Name: "Claude 3 Sonnet", Description: "Balanced performance", Cost: "Medium"},
			{ID: "claude-3-haiku-20240307", Name: "Claude 3 Haiku", Description: "Fast and affordable", Cost: "Low"},
		},
		DefaultModel: anthropicDefaultModel,
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt Prompt, model string) (string, string, error) {
	if model == "" {
		model = anthropicDefaultModel
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: prompt.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("Anthropic API call failed: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", "", fmt.Errorf("Anthropic API returned no content")
	}

	logger.AIDebug("Anthropic answered with %s", model)
	return msg.Content[0].Text, model, nil
}
