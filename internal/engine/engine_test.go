package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/llm"
	"github.com/Darknivht/Agrisense-AI/internal/rag"
)

// capturingProvider records the prompt it was asked to answer.
type capturingProvider struct {
	id     string
	text   string
	err    error
	prompt llm.Prompt
}

func (p *capturingProvider) ID() string { return p.id }

func (p *capturingProvider) Confidence() float64 { return llm.PrimaryConfidence }

func (p *capturingProvider) Profile() core.ProviderProfile {
	return core.ProviderProfile{ID: p.id, Name: p.id}
}

func (p *capturingProvider) Generate(_ context.Context, prompt llm.Prompt, model string) (string, string, error) {
	p.prompt = prompt
	if p.err != nil {
		return "", "", p.err
	}
	if model == "" {
		model = "test-model"
	}
	return p.text, model, nil
}

type fixedEmbedder struct{ vector []float32 }

func (f *fixedEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return f.vector, nil
}

func (f *fixedEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fixedEmbedder) Dimension() int { return len(f.vector) }

func newEngine(t *testing.T, provider llm.Provider, store core.VectorStore, embedder core.EmbedService) *Engine {
	t.Helper()
	var providers []llm.Provider
	if provider != nil {
		providers = append(providers, provider)
	}
	router := llm.NewRouter(providers, "")
	return New(router, rag.NewRetriever(store, embedder), nil)
}

func TestAnswerHappyPath(t *testing.T) {
	ctx := context.Background()
	store := rag.NewMemoryStore()
	require.NoError(t, store.InsertChunks(ctx, []core.DocumentChunk{{
		ID:        "doc_0",
		OwnerID:   "u1",
		Source:    "maize.pdf",
		Text:      "Plant maize when the rains are established.",
		Relevance: 0.8,
		Vector:    []float32{1, 0},
	}}))

	provider := &capturingProvider{id: "openai", text: "Plant in April."}
	e := newEngine(t, provider, store, &fixedEmbedder{vector: []float32{1, 0}})

	res := e.Answer(ctx, "When should I plant maize?", core.UserContext{ID: "u1", Name: "Amina", Language: "en"}, nil, Options{})

	assert.Equal(t, "Plant in April.", res.Text)
	assert.Equal(t, "openai", res.Provider)
	assert.Equal(t, llm.PrimaryConfidence, res.Confidence)
	assert.Equal(t, "en", res.Language)
	assert.NotEmpty(t, res.Suggestions)

	// The retrieved passage reached the prompt.
	assert.Contains(t, provider.prompt.User, "Plant maize when the rains are established.")
	assert.Contains(t, provider.prompt.User, "User Profile: Amina")
}

func TestAnswerDetectsLanguage(t *testing.T) {
	provider := &capturingProvider{id: "openai", text: "Amsa."}
	e := newEngine(t, provider, rag.NewMemoryStore(), nil)

	res := e.Answer(context.Background(), "Sannu, yaya noma a damina?", core.UserContext{}, nil, Options{})
	assert.Equal(t, "ha", res.Language)
	assert.Equal(t, "ha", provider.prompt.Language)
}

func TestAnswerUserLanguageBeatsDetection(t *testing.T) {
	provider := &capturingProvider{id: "openai", text: "Answer."}
	e := newEngine(t, provider, rag.NewMemoryStore(), nil)

	res := e.Answer(context.Background(), "Sannu, yaya noma a damina?", core.UserContext{Language: "en"}, nil, Options{})
	assert.Equal(t, "en", res.Language)
}

func TestAnswerFallsBackWhenProviderFails(t *testing.T) {
	provider := &capturingProvider{id: "openai", err: errors.New("down")}
	e := newEngine(t, provider, rag.NewMemoryStore(), nil)

	res := e.Answer(context.Background(), "When should I plant cassava?", core.UserContext{}, nil, Options{})
	assert.Equal(t, "fallback", res.Provider)
	assert.Equal(t, llm.FallbackConfidence, res.Confidence)
	assert.Contains(t, strings.ToLower(res.Text), "cassava")
}

func TestAnswerUsesStoredPreference(t *testing.T) {
	preferred := &capturingProvider{id: "anthropic", text: "From Claude."}
	other := &capturingProvider{id: "openai", text: "From GPT."}
	router := llm.NewRouter([]llm.Provider{other, preferred}, "")
	e := New(router, rag.NewRetriever(rag.NewMemoryStore(), nil), nil)

	user := core.UserContext{PreferredProvider: "anthropic", PreferredModel: "claude-3-haiku-20240307"}
	res := e.Answer(context.Background(), "question", user, nil, Options{})
	assert.Equal(t, "anthropic", res.Provider)
	assert.Equal(t, "claude-3-haiku-20240307", res.Model)

	// An explicit request overrides the stored preference.
	res = e.Answer(context.Background(), "question", user, nil, Options{Provider: "openai"})
	assert.Equal(t, "openai", res.Provider)
	assert.Equal(t, "test-model", res.Model, "stored model must not leak into an explicit provider request")
}

func TestAnswerIncludesHistory(t *testing.T) {
	provider := &capturingProvider{id: "openai", text: "ok"}
	e := newEngine(t, provider, rag.NewMemoryStore(), nil)

	history := []core.ConversationTurn{{Message: "previous question", Response: "previous answer"}}
	e.Answer(context.Background(), "follow-up", core.UserContext{Language: "en"}, history, Options{})
	assert.Contains(t, provider.prompt.User, "previous question")
	assert.Contains(t, provider.prompt.User, "previous answer")
}

func TestProvidersCatalog(t *testing.T) {
	e := newEngine(t, &capturingProvider{id: "openai"}, rag.NewMemoryStore(), nil)
	profiles := e.Providers()
	require.Len(t, profiles, 1)
	assert.Equal(t, "openai", profiles[0].ID)
	assert.True(t, profiles[0].Available)
}
