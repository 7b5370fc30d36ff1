package chunker

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultOverlap is how many trailing characters of one chunk reappear
	// at the head of the next.
	DefaultOverlap = 200
)

// DefaultSeparators is the boundary preference order: paragraph break, line
// break, sentence boundary, word boundary, then a hard character slice.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter cuts document text into overlapping chunks. Boundaries are
// chosen by scanning backwards from the size budget for the
// highest-priority separator. Every chunk after the first opens with at
// least the last Overlap bytes of its predecessor; the repeat grows past
// Overlap only when a rune boundary forces it, so for single-byte text the
// original is exactly reconstructable by dropping the first Overlap
// characters of every chunk after the first.
type Splitter struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

// NewSplitter returns a splitter with the default size, overlap and
// separator cascade.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:  DefaultChunkSize,
		Overlap:    DefaultOverlap,
		Separators: DefaultSeparators,
	}
}

// Split cuts text into chunks of at most ChunkSize characters. Text that
// fits in a single chunk is returned as-is; empty text yields no chunks.
func (s *Splitter) Split(text string) []string {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.Overlap
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}
	// The gap between size and overlap must exceed two maximal runes so
	// the rune-boundary backoffs below always advance the next chunk.
	if size-overlap < 2*utf8.UTFMax {
		overlap = max(0, size-2*utf8.UTFMax)
	}
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}

	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			return chunks
		}
		cut := findCut(text, start, end, overlap, seps)
		chunks = append(chunks, text[start:cut])

		// Rewind with the same rune-boundary backoff as hard cuts, so no
		// chunk ever begins mid-rune.
		prev := start
		start = cut - overlap
		for start > prev && !utf8.RuneStart(text[start]) {
			start--
		}
		if start == prev {
			// The rewind landed inside the previous chunk's first rune;
			// scan forward instead so the sequence always advances.
			start = cut - overlap
			for !utf8.RuneStart(text[start]) {
				start++
			}
		}
	}
}

// findCut picks the split point for a chunk spanning [start, end). The cut
// must land after start+overlap so the next chunk makes progress once the
// overlap is rewound.
func findCut(text string, start, end, overlap int, seps []string) int {
	floor := start + overlap + 1
	if floor >= end {
		return end
	}
	for _, sep := range seps {
		if sep == "" {
			break
		}
		if i := strings.LastIndex(text[floor:end], sep); i >= 0 {
			// The separator stays with the leading chunk.
			return floor + i + len(sep)
		}
	}
	// No separator in range: hard slice at the budget, backed off to a
	// rune boundary so multi-byte characters are never split.
	cut := end
	for cut > floor && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}
