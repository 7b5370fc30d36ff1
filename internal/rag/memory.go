package rag

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// MemoryStore is an in-process VectorStore used in tests and when no
// Milvus endpoint is configured. Search is an exact L2 scan.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks []core.DocumentChunk
}

var _ core.VectorStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// InsertChunks stores a batch of chunks.
func (s *MemoryStore) InsertChunks(_ context.Context, chunks []core.DocumentChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	logger.RAGDebug("Memory store holds %d chunks", len(s.chunks))
	return nil
}

// SearchSimilar scans all chunks and returns the k nearest by L2 distance.
func (s *MemoryStore) SearchSimilar(_ context.Context, vector []float32, k int, ownerID string) ([]core.ChunkMatch, error) {
	if k <= 0 {
		k = 5
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]core.ChunkMatch, 0, len(s.chunks))
	for _, ch := range s.chunks {
		if ownerID != "" && ch.OwnerID != ownerID {
			continue
		}
		matches = append(matches, core.ChunkMatch{Chunk: ch, Distance: l2Distance(vector, ch.Vector)})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// DeleteBySource removes every chunk of the named source.
func (s *MemoryStore) DeleteBySource(_ context.Context, source, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	deleted := 0
	for _, ch := range s.chunks {
		if ch.Source == source && (ownerID == "" || ch.OwnerID == ownerID) {
			deleted++
			continue
		}
		kept = append(kept, ch)
	}
	s.chunks = kept
	return deleted, nil
}

// Stats summarizes the store contents.
func (s *MemoryStore) Stats(_ context.Context, ownerID string) (core.DocumentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := core.DocumentStats{TotalChunks: len(s.chunks)}
	sources := make(map[string]struct{})
	for _, ch := range s.chunks {
		sources[ch.Source] = struct{}{}
		if ownerID != "" && ch.OwnerID == ownerID {
			stats.UserChunks++
		}
	}
	stats.TotalDocuments = len(sources)
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func l2Distance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}
