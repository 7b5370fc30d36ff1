package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// Weights blending vector similarity with stored agricultural relevance.
// Preserved from the source system's tuning; change here, not inline.
const (
	SimilarityWeight = 0.7
	RelevanceWeight  = 0.3
)

// overFetchFactor widens the candidate pool so re-ranking by the combined
// score has something to drop.
const overFetchFactor = 2

// Retriever ranks stored chunks against a free-text query.
type Retriever struct {
	store    core.VectorStore
	embedder core.EmbedService
}

// NewRetriever creates a retriever. A nil embedder is allowed and makes
// every search return no passages.
func NewRetriever(store core.VectorStore, embedder core.EmbedService) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Search returns up to k passages ordered by combined score, best first.
func (r *Retriever) Search(ctx context.Context, query string, k int, ownerID string) ([]core.RetrievalResult, error) {
	if r.embedder == nil {
		logger.RAGDebug("No embedding service configured, skipping retrieval")
		return nil, nil
	}
	if k <= 0 {
		k = 5
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := r.store.SearchSimilar(ctx, vector, k*overFetchFactor, ownerID)
	if err != nil {
		return nil, err
	}

	results := make([]core.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		similarity := math.Max(0, 1-float64(m.Distance))
		results = append(results, core.RetrievalResult{
			Content:       m.Chunk.Text,
			Source:        m.Chunk.Source,
			ChunkIndex:    m.Chunk.Index,
			Similarity:    similarity,
			Relevance:     m.Chunk.Relevance,
			CombinedScore: SimilarityWeight*similarity + RelevanceWeight*m.Chunk.Relevance,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})
	if len(results) > k {
		results = results[:k]
	}

	logger.RAGDebug("Retrieved %d passages for query of %d chars", len(results), len(query))
	return results, nil
}
