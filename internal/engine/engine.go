package engine

import (
	"context"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/lang"
	"github.com/Darknivht/Agrisense-AI/internal/llm"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
	"github.com/Darknivht/Agrisense-AI/internal/prompt"
	"github.com/Darknivht/Agrisense-AI/internal/rag"
	"github.com/Darknivht/Agrisense-AI/internal/weather"
)

// Options carries per-request overrides for provider, model and language
// selection.
type Options struct {
	Provider string
	Model    string
	Language string
}

// Engine answers farmer questions: it resolves the language, gathers
// document and weather context, assembles a prompt and drives the provider
// fallback chain.
type Engine struct {
	assembler *prompt.Assembler
	detector  *lang.Detector
	router    *llm.Router
	retriever *rag.Retriever
	weather   *weather.Client
}

// New wires an engine. The weather client may be nil.
func New(router *llm.Router, retriever *rag.Retriever, weatherClient *weather.Client) *Engine {
	return &Engine{
		assembler: prompt.NewAssembler(),
		detector:  lang.NewDetector(),
		router:    router,
		retriever: retriever,
		weather:   weatherClient,
	}
}

// Answer generates a reply to one question. Retrieval and weather failures
// only degrade the context; the call always returns an answer.
func (e *Engine) Answer(ctx context.Context, question string, user core.UserContext, history []core.ConversationTurn, opts Options) core.AnswerResult {
	language := opts.Language
	if language == "" {
		language = user.Language
	}
	if language == "" {
		language = e.detector.Detect(question)
	}

	passages, err := e.retriever.Search(ctx, question, prompt.MaxPassages, user.ID)
	if err != nil {
		logger.RAGWarn("Retrieval failed, answering without document context: %v", err)
		passages = nil
	}

	var snapshot *core.WeatherSnapshot
	if e.weather != nil && user.Location != "" {
		snap, err := e.weather.Current(ctx, user.Location)
		if err != nil {
			logger.Warn("Weather lookup failed for %s: %v", user.Location, err)
		} else {
			snapshot = snap
		}
	}

	p := e.assembler.Build(prompt.Input{
		Question: question,
		User:     user,
		History:  history,
		Passages: passages,
		Weather:  snapshot,
		Language: language,
	})

	// An explicit request wins over the user's stored preference.
	requestedProvider := opts.Provider
	requestedModel := opts.Model
	if requestedProvider == "" {
		requestedProvider = user.PreferredProvider
		if requestedModel == "" {
			requestedModel = user.PreferredModel
		}
	}

	res := e.router.Generate(ctx, p, requestedProvider, requestedModel)

	return core.AnswerResult{
		Text:        res.Text,
		Confidence:  res.Confidence,
		Provider:    res.Provider,
		Model:       res.Model,
		Language:    p.Language,
		Suggestions: prompt.Suggestions(p.Language),
	}
}

// Providers exposes the provider catalog for settings surfaces.
func (e *Engine) Providers() []core.ProviderProfile {
	return e.router.Catalog()
}
