package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleBasedAnswer(t *testing.T, question, lang, name string) string {
	t.Helper()
	text, model, err := NewRuleBased().Generate(context.Background(), Prompt{
		Question: question,
		Language: lang,
		UserName: name,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ruleBasedModel, model)
	require.NotEmpty(t, text)
	return text
}

func TestRuleBasedWeatherQuestions(t *testing.T) {
	text := ruleBasedAnswer(t, "Will the rain affect my farm this week?", "en", "")
	assert.Contains(t, text, "rainy season")
}

func TestRuleBasedCropQuestions(t *testing.T) {
	text := ruleBasedAnswer(t, "When should I plant cassava?", "en", "")
	assert.Contains(t, text, "cassava")
	assert.Contains(t, text, "9 to 12 months")

	text = ruleBasedAnswer(t, "best time for maize?", "en", "")
	assert.Contains(t, text, "maize")
}

func TestRuleBasedPestQuestions(t *testing.T) {
	text := ruleBasedAnswer(t, "My tomatoes have an insect problem", "en", "")
	assert.Contains(t, text, "pest")
}

func TestRuleBasedMarketQuestions(t *testing.T) {
	text := ruleBasedAnswer(t, "What is a good price for my harvest?", "en", "")
	assert.Contains(t, text, "market")
}

func TestRuleBasedGreetingUsesName(t *testing.T) {
	text := ruleBasedAnswer(t, "good morning", "en", "Chidi")
	assert.Contains(t, text, "Chidi")
	assert.Contains(t, text, "AgriSense")
}

func TestRuleBasedLocalizedAnswers(t *testing.T) {
	for _, lang := range []string{"en", "ha", "yo", "ig", "ff"} {
		text := ruleBasedAnswer(t, "hello there", lang, "")
		assert.NotEmpty(t, text, "language %s", lang)
	}

	// Hausa greeting differs from English.
	en := ruleBasedAnswer(t, "hello there", "en", "Musa")
	ha := ruleBasedAnswer(t, "hello there", "ha", "Musa")
	assert.NotEqual(t, en, ha)
}

func TestRuleBasedUnknownLanguageFallsBackToEnglish(t *testing.T) {
	text := ruleBasedAnswer(t, "hello", "sw", "")
	en := ruleBasedAnswer(t, "hello", "en", "")
	assert.Equal(t, en, text)
}

func TestErrorMessageLocalized(t *testing.T) {
	assert.NotEmpty(t, ErrorMessage("en"))
	assert.NotEmpty(t, ErrorMessage("yo"))
	assert.Equal(t, ErrorMessage("en"), ErrorMessage("unknown"))
}
