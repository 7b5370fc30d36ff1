package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

const openAIDefaultModel = "gpt-4"

// OpenAIProvider generates answers through the OpenAI chat completions API.
type OpenAIProvider struct {
	client openai.Client
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (p *OpenAIProvider) ID() string { return "openai" }

func (p *OpenAIProvider) Confidence() float64 { return PrimaryConfidence }

func (p *OpenAIProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{
		ID:          "openai",
		Name:        "OpenAI GPT",
		Description: "Advanced AI models from OpenAI",
		Models: []core.ModelInfo{
			{ID: "gpt-4", Name: "GPT-4", Description: "Most capable model", Cost: "High"},
			{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Description: "Faster GPT-4 variant", Cost: "High"},
			{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Description: "Fast and affordable", Cost: "Low"},
		},
		DefaultModel: openAIDefaultModel,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt Prompt, model string) (string, string, error) {
	if model == "" {
		model = openAIDefaultModel
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(defaultMaxTokens),
		Temperature: openai.Float(defaultTemperature),
	})
	if err != nil {
		return "", "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", "", fmt.Errorf("OpenAI API returned no choices")
	}

	logger.AIDebug("OpenAI answered with %s (%d tokens)", model, completion.Usage.TotalTokens)
	return completion.Choices[0].Message.Content, model, nil
}
