package llm

import (
	"context"
	"time"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// DefaultAttemptTimeout bounds each provider attempt so one slow provider
// cannot stall the whole chain.
const DefaultAttemptTimeout = 60 * time.Second

// DefaultProviderID is tried first when neither the request nor the user
// names a provider.
const DefaultProviderID = "openai"

// Result is the terminal outcome of one routed generation.
type Result struct {
	Text       string
	Confidence float64
	Provider   string
	Model      string
}

// Router drives the provider fallback chain: the requested provider first,
// then every other available provider in priority order, and finally the
// rule-based responder.
type Router struct {
	providers       []Provider
	fallback        *RuleBased
	defaultProvider string
	timeout         time.Duration
}

// AvailableProviders builds the priority-ordered provider set from the
// credentials configured at startup. A provider with no key is simply
// absent from the chain.
func AvailableProviders(openaiKey, anthropicKey, geminiKey, openrouterKey string) []Provider {
	var providers []Provider
	if openaiKey != "" {
		providers = append(providers, NewOpenAIProvider(openaiKey))
	}
	if anthropicKey != "" {
		providers = append(providers, NewAnthropicProvider(anthropicKey))
	}
	if geminiKey != "" {
		providers = append(providers, NewGeminiProvider(geminiKey))
	}
	if openrouterKey != "" {
		providers = append(providers, NewOpenRouterProvider(openrouterKey))
	}
	return providers
}

// NewRouter creates a router over the given providers, in priority order.
// An empty defaultProvider selects DefaultProviderID.
func NewRouter(providers []Provider, defaultProvider string) *Router {
	if defaultProvider == "" {
		defaultProvider = DefaultProviderID
	}
	return &Router{
		providers:       providers,
		fallback:        NewRuleBased(),
		defaultProvider: defaultProvider,
		timeout:         DefaultAttemptTimeout,
	}
}

// SetTimeout overrides the per-attempt timeout.
func (r *Router) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Generate answers the prompt. It never returns an error: a provider
// failure only advances the chain, and the rule-based terminal always
// succeeds.
func (r *Router) Generate(ctx context.Context, prompt Prompt, requestedProvider, requestedModel string) Result {
	requested := requestedProvider
	if requested == "" {
		requested = r.defaultProvider
	}

	for _, p := range r.attemptOrder(requested) {
		// An explicit model request only applies to the provider it was
		// requested for (the default provider when none was named);
		// fallback attempts use each provider's default.
		model := ""
		if requestedModel != "" && p.ID() == requested {
			model = requestedModel
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		text, usedModel, err := p.Generate(attemptCtx, prompt, model)
		cancel()
		if err != nil {
			logger.AIWarn("Provider %s failed, advancing fallback chain: %v", p.ID(), err)
			continue
		}

		logger.AIInfo("Provider %s answered with model %s", p.ID(), usedModel)
		return Result{
			Text:       text,
			Confidence: p.Confidence(),
			Provider:   p.ID(),
			Model:      usedModel,
		}
	}

	// Unreachable in practice: the rule-based terminal cannot fail. Kept
	// so a routed question still gets a reply if that ever changes.
	logger.AIError("Every provider in the chain failed, including the rule-based terminal")
	return Result{
		Text:       ErrorMessage(prompt.Language),
		Confidence: ErrorConfidence,
		Provider:   "error",
		Model:      "none",
	}
}

// attemptOrder puts the requested provider first, keeps the remaining
// providers in priority order, and terminates with the rule-based
// responder.
func (r *Router) attemptOrder(requested string) []Provider {
	order := make([]Provider, 0, len(r.providers)+1)
	for _, p := range r.providers {
		if p.ID() == requested {
			order = append(order, p)
			break
		}
	}
	for _, p := range r.providers {
		if len(order) > 0 && p == order[0] {
			continue
		}
		order = append(order, p)
	}
	return append(order, r.fallback)
}

// Catalog returns the profiles of the providers a user can choose from.
// The rule-based responder is listed only when no network provider is
// configured, matching what the chain would actually use.
func (r *Router) Catalog() []core.ProviderProfile {
	if len(r.providers) == 0 {
		profile := r.fallback.Profile()
		profile.Available = true
		return []core.ProviderProfile{profile}
	}
	profiles := make([]core.ProviderProfile, 0, len(r.providers))
	for _, p := range r.providers {
		profile := p.Profile()
		profile.Available = true
		profiles = append(profiles, profile)
	}
	return profiles
}
