package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darknivht/Agrisense-AI/internal/core"
)

// stubProvider is a scriptable provider for chain tests.
type stubProvider struct {
	id         string
	text       string
	err        error
	confidence float64
	calls      []string // models passed to Generate
	delay      time.Duration
}

func (s *stubProvider) ID() string { return s.id }

func (s *stubProvider) Confidence() float64 { return s.confidence }

func (s *stubProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{ID: s.id, Name: s.id, DefaultModel: s.id + "-default"}
}

func (s *stubProvider) Generate(ctx context.Context, _ Prompt, model string) (string, string, error) {
	s.calls = append(s.calls, model)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", "", s.err
	}
	used := model
	if used == "" {
		used = s.id + "-default"
	}
	return s.text, used, nil
}

func TestGenerateUsesRequestedProviderFirst(t *testing.T) {
	first := &stubProvider{id: "openai", text: "from openai", confidence: 0.9}
	second := &stubProvider{id: "anthropic", text: "from anthropic", confidence: 0.9}
	r := NewRouter([]Provider{first, second}, "")

	res := r.Generate(context.Background(), Prompt{Question: "q"}, "anthropic", "claude-3-haiku-20240307")
	assert.Equal(t, "anthropic", res.Provider)
	assert.Equal(t, "from anthropic", res.Text)
	assert.Equal(t, "claude-3-haiku-20240307", res.Model)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Empty(t, first.calls, "lower-priority provider should not be tried when the first succeeds")
}

func TestGenerateAdvancesChainOnFailure(t *testing.T) {
	first := &stubProvider{id: "openai", err: errors.New("rate limited"), confidence: 0.9}
	second := &stubProvider{id: "gemini", text: "from gemini", confidence: 0.85}
	r := NewRouter([]Provider{first, second}, "")

	res := r.Generate(context.Background(), Prompt{Question: "q"}, "", "")
	assert.Equal(t, "gemini", res.Provider)
	assert.Equal(t, 0.85, res.Confidence)
	require.Len(t, first.calls, 1)

	// The requested model must not leak into fallback attempts.
	first.calls = nil
	second.calls = nil
	res = r.Generate(context.Background(), Prompt{Question: "q"}, "openai", "gpt-4-turbo")
	assert.Equal(t, "gemini", res.Provider)
	assert.Equal(t, []string{"gpt-4-turbo"}, first.calls)
	assert.Equal(t, []string{""}, second.calls)
	assert.Equal(t, "gemini-default", res.Model)
}

func TestGenerateModelAppliesToDefaultProvider(t *testing.T) {
	def := &stubProvider{id: "openai", text: "answer", confidence: 0.9}
	other := &stubProvider{id: "gemini", text: "other", confidence: 0.85}
	r := NewRouter([]Provider{def, other}, "")

	// A bare model request targets the default provider.
	res := r.Generate(context.Background(), Prompt{Question: "q"}, "", "gpt-3.5-turbo")
	assert.Equal(t, "openai", res.Provider)
	assert.Equal(t, "gpt-3.5-turbo", res.Model)
	assert.Equal(t, []string{"gpt-3.5-turbo"}, def.calls)

	// It still must not follow the chain past the default provider.
	def.err = errors.New("down")
	def.calls = nil
	res = r.Generate(context.Background(), Prompt{Question: "q"}, "", "gpt-3.5-turbo")
	assert.Equal(t, "gemini", res.Provider)
	assert.Equal(t, "gemini-default", res.Model)
	assert.Equal(t, []string{""}, other.calls)
}

func TestGenerateFallsBackToRuleBased(t *testing.T) {
	broken := &stubProvider{id: "openai", err: errors.New("down")}
	r := NewRouter([]Provider{broken}, "")

	res := r.Generate(context.Background(), Prompt{Question: "hello", Language: "en", UserName: "Amina"}, "", "")
	assert.Equal(t, "fallback", res.Provider)
	assert.Equal(t, FallbackConfidence, res.Confidence)
	assert.Equal(t, ruleBasedModel, res.Model)
	assert.NotEmpty(t, res.Text)
	assert.Contains(t, res.Text, "Amina")
}

func TestGenerateWithNoProvidersStillAnswers(t *testing.T) {
	r := NewRouter(nil, "")
	res := r.Generate(context.Background(), Prompt{Question: "weather tomorrow", Language: "en"}, "", "")
	assert.Equal(t, "fallback", res.Provider)
	assert.NotEmpty(t, res.Text)
}

func TestGenerateUnknownRequestedProvider(t *testing.T) {
	only := &stubProvider{id: "openai", text: "answer", confidence: 0.9}
	r := NewRouter([]Provider{only}, "")

	// A provider that is not in the chain just falls through to priority
	// order.
	res := r.Generate(context.Background(), Prompt{Question: "q"}, "gemini", "")
	assert.Equal(t, "openai", res.Provider)
}

func TestGeneratePerAttemptTimeout(t *testing.T) {
	slow := &stubProvider{id: "openai", text: "late", delay: 200 * time.Millisecond}
	fast := &stubProvider{id: "gemini", text: "quick", confidence: 0.85}
	r := NewRouter([]Provider{slow, fast}, "")
	r.SetTimeout(20 * time.Millisecond)

	start := time.Now()
	res := r.Generate(context.Background(), Prompt{Question: "q"}, "", "")
	assert.Equal(t, "gemini", res.Provider)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestAvailableProviders(t *testing.T) {
	assert.Empty(t, AvailableProviders("", "", "", ""))

	providers := AvailableProviders("sk-1", "", "g-1", "")
	require.Len(t, providers, 2)
	assert.Equal(t, "openai", providers[0].ID())
	assert.Equal(t, "gemini", providers[1].ID())

	all := AvailableProviders("a", "b", "c", "d")
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID()
	}
	assert.Equal(t, []string{"openai", "anthropic", "gemini", "openrouter"}, ids)
}

func TestCatalog(t *testing.T) {
	r := NewRouter([]Provider{
		&stubProvider{id: "openai"},
		&stubProvider{id: "gemini"},
	}, "")
	profiles := r.Catalog()
	require.Len(t, profiles, 2)
	for _, p := range profiles {
		assert.True(t, p.Available)
	}

	// With no network providers only the rule-based profile remains.
	empty := NewRouter(nil, "")
	profiles = empty.Catalog()
	require.Len(t, profiles, 1)
	assert.Equal(t, "fallback", profiles[0].ID)
	assert.True(t, profiles[0].Available)
}
