package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Darknivht/Agrisense-AI/internal/chunker"
	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/embed"
	"github.com/Darknivht/Agrisense-AI/internal/engine"
	"github.com/Darknivht/Agrisense-AI/internal/ingest"
	"github.com/Darknivht/Agrisense-AI/internal/llm"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
	"github.com/Darknivht/Agrisense-AI/internal/rag"
	"github.com/Darknivht/Agrisense-AI/internal/relevance"
	"github.com/Darknivht/Agrisense-AI/internal/weather"
)

// Config represents the application configuration.
type Config struct {
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	GeminiAPIKey      string
	OpenRouterAPIKey  string
	OpenWeatherAPIKey string
	DefaultProvider   string
	EmbeddingModel    string
	EmbeddingDim      int
	MilvusHost        string
	MilvusPort        string
	UserName          string
	UserLocation      string
	UserLanguage      string
}

// loadConfig loads configuration from environment variables.
func loadConfig() *Config {
	embeddingDim := embed.DefaultDimension
	if v := os.Getenv("EMBEDDING_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			embeddingDim = n
		}
	}

	return &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		DefaultProvider:   getEnvWithDefault("DEFAULT_AI_PROVIDER", "openai"),
		EmbeddingModel:    getEnvWithDefault("EMBEDDING_MODEL", embed.DefaultModel),
		EmbeddingDim:      embeddingDim,
		MilvusHost:        os.Getenv("MILVUS_HOST"),
		MilvusPort:        getEnvWithDefault("MILVUS_PORT", "19530"),
		UserName:          getEnvWithDefault("USER_NAME", "Farmer"),
		UserLocation:      os.Getenv("USER_LOCATION"),
		UserLanguage:      os.Getenv("USER_LANGUAGE"),
	}
}

// getEnvWithDefault gets an environment variable or returns a default value.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	ingestPath := flag.String("ingest", "", "Ingest a PDF document and exit")
	flag.Parse()

	logger.Init(*debug)
	logger.Info("Starting AgriSense...")

	if err := godotenv.Load(); err != nil {
		logger.Info("Warning: No .env file found or error loading it")
	}

	config := loadConfig()

	if logger.IsDebugEnabled() {
		logger.Debug("Configuration loaded: OpenAI=%v, Anthropic=%v, Gemini=%v, OpenRouter=%v, Weather=%v, MilvusHost=%s",
			config.OpenAIAPIKey != "", config.AnthropicAPIKey != "", config.GeminiAPIKey != "",
			config.OpenRouterAPIKey != "", config.OpenWeatherAPIKey != "", config.MilvusHost)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Embeddings require an OpenAI key; without one the assistant still
	// answers, just without document retrieval.
	var embedService core.EmbedService
	if config.OpenAIAPIKey != "" {
		embedService = embed.NewOpenAIEmbedder(config.OpenAIAPIKey, config.EmbeddingModel, config.EmbeddingDim)
	} else {
		logger.Warn("OPENAI_API_KEY not set, document ingestion and retrieval are disabled")
	}

	var store core.VectorStore
	if config.MilvusHost != "" {
		milvusStore, err := rag.NewMilvusStore(ctx, config.MilvusHost+":"+config.MilvusPort, config.EmbeddingDim)
		if err != nil {
			logger.Error("Failed to initialize Milvus store: %v", err)
			os.Exit(1)
		}
		store = milvusStore
	} else {
		logger.Warn("MILVUS_HOST not set, using the in-memory vector store")
		store = rag.NewMemoryStore()
	}
	defer store.Close()

	providers := llm.AvailableProviders(config.OpenAIAPIKey, config.AnthropicAPIKey, config.GeminiAPIKey, config.OpenRouterAPIKey)
	if len(providers) == 0 {
		logger.Warn("No provider credentials configured, answers come from the rule-based assistant")
	}
	router := llm.NewRouter(providers, config.DefaultProvider)

	var weatherClient *weather.Client
	if config.OpenWeatherAPIKey != "" {
		weatherClient = weather.NewClient(config.OpenWeatherAPIKey)
	}

	retriever := rag.NewRetriever(store, embedService)
	pipeline := ingest.NewPipeline(store, embedService, relevance.NewScorer(), chunker.NewSplitter())
	answerEngine := engine.New(router, retriever, weatherClient)

	user := core.UserContext{
		ID:       "local",
		Name:     config.UserName,
		Location: config.UserLocation,
		Language: config.UserLanguage,
	}

	if *ingestPath != "" {
		runIngest(ctx, pipeline, *ingestPath, user.ID)
		return
	}

	runChat(ctx, cancel, answerEngine, user)
}

// runIngest processes a single document and prints the storage key.
func runIngest(ctx context.Context, pipeline *ingest.Pipeline, path, ownerID string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open %s: %v", path, err)
		os.Exit(1)
	}
	defer f.Close()

	key, err := pipeline.ProcessDocument(ctx, f, filepath.Base(path), ownerID)
	if err != nil {
		logger.Error("Failed to ingest %s: %v", path, err)
		os.Exit(1)
	}

	stats, err := pipeline.Stats(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to read store stats: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %s as %s (%d chunks in store)\n", path, key, stats.TotalChunks)
}

// runChat answers questions from stdin until EOF or a shutdown signal.
func runChat(ctx context.Context, cancel context.CancelFunc, answerEngine *engine.Engine, user core.UserContext) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down...")
		cancel()
	}()

	fmt.Println("AgriSense ready. Ask a question (Ctrl-D to quit).")

	var history []core.ConversationTurn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		res := answerEngine.Answer(ctx, question, user, history, engine.Options{})
		fmt.Printf("\n%s\n\n[%s/%s, confidence %.2f]\n", res.Text, res.Provider, res.Model, res.Confidence)

		// Newest first, bounded so prompts stay small.
		history = append([]core.ConversationTurn{{Message: question, Response: res.Text}}, history...)
		if len(history) > 10 {
			history = history[:10]
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
