package llm

import (
	"context"

	"github.com/Darknivht/Agrisense-AI/internal/core"
)

// defaultMaxTokens bounds every provider completion.
const defaultMaxTokens = 800

// defaultTemperature is the sampling temperature for network providers.
const defaultTemperature = 0.7

// Prompt is the assembled input for one generation attempt. System and
// User drive network providers; Question, Language and UserName let the
// rule-based responder answer without re-parsing the assembled text.
type Prompt struct {
	System   string
	User     string
	Question string
	Language string
	UserName string
}

// Provider is one interchangeable answer backend. Implementations form the
// closed variant set the fallback chain iterates over.
type Provider interface {
	// ID is the stable provider identifier ("openai", "anthropic",
	// "gemini", "openrouter", "fallback").
	ID() string
	// Profile describes the provider and its models for settings catalogs.
	Profile() core.ProviderProfile
	// Confidence is the heuristic confidence tier of answers from this
	// provider.
	Confidence() float64
	// Generate produces an answer. An empty model selects the provider's
	// default; the model actually used is returned.
	Generate(ctx context.Context, prompt Prompt, model string) (text string, modelUsed string, err error)
}

// Confidence tiers by provider class.
const (
	// PrimaryConfidence is for first-party APIs (OpenAI, Anthropic).
	PrimaryConfidence = 0.9
	// SecondaryConfidence is for Gemini and aggregator APIs.
	SecondaryConfidence = 0.85
	// FallbackConfidence is for the rule-based responder.
	FallbackConfidence = 0.6
	// ErrorConfidence marks the degraded path where every attempt failed.
	ErrorConfidence = 0.3
)
