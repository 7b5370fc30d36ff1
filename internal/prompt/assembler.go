package prompt

import (
	"fmt"
	"strings"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/llm"
)

const (
	// MaxHistoryTurns bounds how much prior conversation enters the prompt.
	MaxHistoryTurns = 3
	// MaxPassages bounds how many retrieved excerpts enter the prompt.
	MaxPassages = 5
	// PassagePreviewLen truncates each excerpt to keep the prompt bounded.
	PassagePreviewLen = 200
)

// Input carries everything the assembler folds into one prompt.
type Input struct {
	Question string
	User     core.UserContext
	// History is prior turns, newest first.
	History []core.ConversationTurn
	// Passages are retrieval results, best first.
	Passages []core.RetrievalResult
	// Weather is optional current conditions for the user's location.
	Weather *core.WeatherSnapshot
	// Language is the resolved language code.
	Language string
}

// Assembler builds provider-ready prompts from per-request context.
type Assembler struct{}

// NewAssembler creates a prompt assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Build merges the user profile, recent history, retrieved passages and
// weather into one llm.Prompt. Unknown language codes fall back to English.
func (a *Assembler) Build(in Input) llm.Prompt {
	lang := in.Language
	if _, ok := systemPrompts[lang]; !ok {
		lang = DefaultLanguage
	}

	name := in.User.Name
	if name == "" {
		name = "Farmer"
	}
	location := in.User.Location
	if location == "" {
		location = "Nigeria"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Profile: %s from %s\n", name, location)
	if len(in.User.FarmingInterests) > 0 {
		fmt.Fprintf(&b, "Farming interests: %s\n", strings.Join(in.User.FarmingInterests, ", "))
	}

	if len(in.History) > 0 {
		b.WriteString("Recent conversation:\n")
		turns := in.History
		if len(turns) > MaxHistoryTurns {
			turns = turns[:MaxHistoryTurns]
		}
		// History arrives newest first; the prompt reads oldest to newest.
		for i := len(turns) - 1; i >= 0; i-- {
			fmt.Fprintf(&b, "User: %s\n", turns[i].Message)
			fmt.Fprintf(&b, "AI: %s\n", turns[i].Response)
		}
	}

	if len(in.Passages) > 0 {
		b.WriteString("Relevant documents:\n")
		passages := in.Passages
		if len(passages) > MaxPassages {
			passages = passages[:MaxPassages]
		}
		for _, p := range passages {
			fmt.Fprintf(&b, "- %s...\n", truncate(p.Content, PassagePreviewLen))
		}
	}

	if in.Weather != nil {
		fmt.Fprintf(&b, "Current weather in %s: %s\n", location, formatWeather(in.Weather))
	}

	return llm.Prompt{
		System:   SystemPrompt(lang),
		User:     fmt.Sprintf("Context:\n%s\nUser question: %s", b.String(), in.Question),
		Question: in.Question,
		Language: lang,
		UserName: in.User.Name,
	}
}

func formatWeather(w *core.WeatherSnapshot) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%.1f°C", w.Temperature))
	parts = append(parts, fmt.Sprintf("%d%% humidity", w.Humidity))
	if w.Description != "" {
		parts = append(parts, w.Description)
	}
	parts = append(parts, fmt.Sprintf("wind %.1f m/s", w.WindSpeed))
	if w.RainfallMM > 0 {
		parts = append(parts, fmt.Sprintf("%.1fmm rain in the last hour", w.RainfallMM))
	}
	return strings.Join(parts, ", ")
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
