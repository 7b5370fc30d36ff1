package relevance

import "strings"

// DensityFactor normalizes keyword counts against text length: a text where
// one word in ten is a domain keyword scores 1.0. Preserved from the source
// system's tuning.
const DensityFactor = 0.1

// DefaultKeywords is the built-in agricultural vocabulary. Matching is
// case-insensitive and substring-based, so "farming" also matches
// "farmings" and "agro-farming".
var DefaultKeywords = []string{
	"farming", "agriculture", "crop", "harvest", "planting", "soil",
	"fertilizer", "irrigation", "pest", "disease", "livestock", "cattle",
	"poultry", "fish", "rice", "maize", "cassava", "yam", "tomato",
	"pepper", "beans", "groundnut", "weather", "climate", "season",
	"rainfall", "drought", "flood", "market", "price", "cooperative",
	"extension", "training", "technology", "organic", "sustainable",
	"productivity", "yield", "storage", "processing",
}

// Scorer computes how agricultural a piece of text is from keyword density.
type Scorer struct {
	keywords []string
	seen     map[string]bool
}

// NewScorer returns a scorer over the given vocabulary, or DefaultKeywords
// when none is given.
func NewScorer(keywords ...string) *Scorer {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	s := &Scorer{seen: make(map[string]bool, len(keywords))}
	s.AddKeywords(keywords...)
	return s
}

// AddKeywords extends the vocabulary. Duplicates are ignored.
func (s *Scorer) AddKeywords(words ...string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || s.seen[w] {
			continue
		}
		s.seen[w] = true
		s.keywords = append(s.keywords, w)
	}
}

// Keywords returns the current vocabulary.
func (s *Scorer) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Score returns the relevance of text in [0, 1]. Empty or whitespace-only
// text scores 0.
func (s *Scorer) Score(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range s.keywords {
		count += strings.Count(lower, kw)
	}
	score := float64(count) / (float64(len(words)) * DensityFactor)
	if score > 1 {
		return 1
	}
	return score
}
