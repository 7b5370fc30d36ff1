package lang

import (
	"strings"

	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// DefaultLanguage is returned when no language scores confidently.
const DefaultLanguage = "en"

// minScore is the confidence floor below which detection falls back to
// English.
const minScore = 0.1

// minLength is the shortest text worth scoring, in runes.
const minLength = 3

// codes fixes the evaluation order so score ties resolve deterministically,
// English first.
var codes = []string{"en", "ha", "yo", "ig", "ff"}

// profile holds the evidence words for one language. Keywords are strong
// signals (greetings, farming terms); common words are weak ones.
type profile struct {
	keywords []string
	common   []string
}

var profiles = map[string]profile{
	"en": {
		keywords: []string{"hello", "please", "thank", "farm", "crop", "plant", "weather", "market", "price", "harvest", "how", "what", "when"},
		common:   []string{"the", "is", "are", "and", "for", "with", "my", "your", "this", "that", "can", "will", "do"},
	},
	"ha": {
		keywords: []string{"sannu", "nagode", "noma", "shuka", "gona", "damina", "kasuwa", "farashi", "girbi", "yaya", "menene", "yaushe", "ruwa"},
		common:   []string{"da", "na", "a", "ya", "ta", "ba", "ne", "ce", "zan", "ka", "ki", "mu"},
	},
	"yo": {
		keywords: []string{"bawo", "jowo", "ese", "oko", "irugbin", "gbin", "ojo", "oja", "owo", "ikore", "kini", "nigbawo", "agbe"},
		common:   []string{"ni", "ti", "mi", "re", "si", "ati", "fun", "je", "se", "wa", "yoo", "ko"},
	},
	"ig": {
		keywords: []string{"ndewo", "biko", "daalu", "ugbo", "ihe okuku", "iku", "mmiri ozuzo", "ahia", "onuahia", "owuwe", "kedu", "gini", "ole"},
		common:   []string{"na", "ka", "ga", "ma", "bu", "di", "nke", "ya", "anyi", "unu", "ha", "m"},
	},
	"ff": {
		keywords: []string{"jam", "tiiɗno", "jaaraama", "ngesa", "aawde", "demal", "ndunngu", "luumo", "coggu", "sonngo", "hol", "noy", "remooɓe"},
		common:   []string{"e", "ko", "ina", "so", "maa", "am", "men", "ɗum", "kala", "wona", "no"},
	},
}

// Detector infers the language of a message from keyword evidence.
type Detector struct{}

// NewDetector creates a language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the best-scoring language code for text, or
// DefaultLanguage for short text or weak evidence.
func (d *Detector) Detect(text string) string {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minLength {
		return DefaultLanguage
	}

	lower := strings.ToLower(trimmed)
	words := tokenize(lower)
	if len(words) == 0 {
		return DefaultLanguage
	}

	best := DefaultLanguage
	bestScore := 0.0
	for _, code := range codes {
		score := scoreLanguage(lower, words, profiles[code])
		if score > bestScore {
			best = code
			bestScore = score
		}
	}
	if bestScore < minScore {
		return DefaultLanguage
	}

	logger.Debug("Detected language %s (score %.3f)", best, bestScore)
	return best
}

// scoreLanguage weighs strong keyword hits double against weak common-word
// hits, normalized by text length.
func scoreLanguage(lower string, words map[string]int, p profile) float64 {
	total := 0
	for _, n := range words {
		total += n
	}
	if total == 0 {
		return 0
	}

	hits := 0.0
	for _, kw := range p.keywords {
		if strings.ContainsRune(kw, ' ') {
			hits += 2 * float64(strings.Count(lower, kw))
			continue
		}
		hits += 2 * float64(words[kw])
	}
	for _, cw := range p.common {
		hits += float64(words[cw])
	}
	return hits / float64(2*total)
}

// tokenize splits lowered text into words, stripping common punctuation.
func tokenize(lower string) map[string]int {
	words := make(map[string]int)
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,!?;:()\"'")
		if w != "" {
			words[w]++
		}
	}
	return words
}
