package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darknivht/Agrisense-AI/internal/chunker"
	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/rag"
	"github.com/Darknivht/Agrisense-AI/internal/relevance"
)

// fixedExtractor returns canned text instead of parsing the spooled file.
type fixedExtractor struct {
	text string
	err  error
}

func (f fixedExtractor) Extract(string) (string, error) {
	return f.text, f.err
}

type countingEmbedder struct {
	dim     int
	batches [][]string
	err     error
}

func (e *countingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vs, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (e *countingEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.batches = append(e.batches, texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, e.dim)
	}
	return out, nil
}

func (e *countingEmbedder) Dimension() int { return e.dim }

func newTestPipeline(t *testing.T, store core.VectorStore, embedder core.EmbedService, text string) *Pipeline {
	t.Helper()
	p := NewPipeline(store, embedder, relevance.NewScorer(), chunker.NewSplitter())
	p.SetExtractor(fixedExtractor{text: text})
	p.SetTempDir(t.TempDir())
	return p
}

func TestProcessDocumentStoresChunks(t *testing.T) {
	ctx := context.Background()
	store := rag.NewMemoryStore()
	embedder := &countingEmbedder{dim: 4}

	text := strings.Repeat("Maize planting advice for the wet season. ", 60)
	p := newTestPipeline(t, store, embedder, text)

	key, err := p.ProcessDocument(ctx, strings.NewReader("%PDF-fake"), "maize-guide.pdf", "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "-")

	stats, err := store.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Greater(t, stats.TotalChunks, 1)
	assert.Equal(t, stats.TotalChunks, stats.UserChunks)
	assert.Equal(t, 1, stats.TotalDocuments)

	// Chunk metadata: IDs derive from the storage key, source keeps the
	// original filename, ordinals and totals are consistent.
	matches, err := store.SearchSimilar(ctx, make([]float32, 4), stats.TotalChunks, "")
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, m := range matches {
		ch := m.Chunk
		assert.Equal(t, fmt.Sprintf("%s_%d", key, ch.Index), ch.ID)
		assert.Equal(t, "maize-guide.pdf", ch.Source)
		assert.Equal(t, "u1", ch.OwnerID)
		assert.Equal(t, stats.TotalChunks, ch.TotalChunks)
		assert.False(t, seen[ch.Index], "duplicate chunk index %d", ch.Index)
		seen[ch.Index] = true
		assert.NotEmpty(t, ch.Vector)
		assert.Positive(t, ch.CreatedAt)
	}
}

func TestProcessDocumentWithoutEmbedder(t *testing.T) {
	p := newTestPipeline(t, rag.NewMemoryStore(), nil, "irrelevant")
	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "a.pdf", "u1")
	assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
}

func TestProcessDocumentEmptyText(t *testing.T) {
	tmp := t.TempDir()
	p := NewPipeline(rag.NewMemoryStore(), &countingEmbedder{dim: 4}, relevance.NewScorer(), chunker.NewSplitter())
	p.SetExtractor(fixedExtractor{text: "   \n "})
	p.SetTempDir(tmp)

	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "empty.pdf", "u1")
	assert.ErrorIs(t, err, core.ErrEmptyDocument)
	assertDirEmpty(t, tmp)
}

func TestProcessDocumentEmbedFailureCleansUp(t *testing.T) {
	tmp := t.TempDir()
	p := NewPipeline(rag.NewMemoryStore(), &countingEmbedder{dim: 4, err: errors.New("quota")}, relevance.NewScorer(), chunker.NewSplitter())
	p.SetExtractor(fixedExtractor{text: "maize maize maize"})
	p.SetTempDir(tmp)

	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "a.pdf", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed")
	assertDirEmpty(t, tmp)
}

func TestProcessDocumentStoreFailureCleansUp(t *testing.T) {
	tmp := t.TempDir()
	p := NewPipeline(failStore{}, &countingEmbedder{dim: 4}, relevance.NewScorer(), chunker.NewSplitter())
	p.SetExtractor(fixedExtractor{text: "maize planting advice"})
	p.SetTempDir(tmp)

	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "a.pdf", "u1")
	require.Error(t, err)
	var vse *core.VectorStoreError
	assert.True(t, errors.As(err, &vse))
	assertDirEmpty(t, tmp)
}

func TestProcessDocumentCleansUpOnSuccess(t *testing.T) {
	tmp := t.TempDir()
	p := NewPipeline(rag.NewMemoryStore(), &countingEmbedder{dim: 4}, relevance.NewScorer(), chunker.NewSplitter())
	p.SetExtractor(fixedExtractor{text: "maize planting advice"})
	p.SetTempDir(tmp)

	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "a.pdf", "u1")
	require.NoError(t, err)
	assertDirEmpty(t, tmp)
}

func TestProcessDocumentBatchesEmbeddings(t *testing.T) {
	store := rag.NewMemoryStore()
	embedder := &countingEmbedder{dim: 2}

	// Enough text for well over 100 chunks so batching kicks in.
	text := strings.Repeat("z", 130*800+100)
	p := newTestPipeline(t, store, embedder, text)

	_, err := p.ProcessDocument(context.Background(), strings.NewReader("x"), "big.pdf", "u1")
	require.NoError(t, err)
	require.Greater(t, len(embedder.batches), 1)
	for _, batch := range embedder.batches {
		assert.LessOrEqual(t, len(batch), embedBatchSize)
	}
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	store := rag.NewMemoryStore()
	p := newTestPipeline(t, store, &countingEmbedder{dim: 2}, "maize advice for farmers")

	_, err := p.ProcessDocument(ctx, strings.NewReader("x"), "a.pdf", "u1")
	require.NoError(t, err)

	deleted, err := p.DeleteDocument(ctx, "a.pdf", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	stats, err := p.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalChunks)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp dir should be empty after ingestion")
}

type failStore struct{}

func (failStore) InsertChunks(context.Context, []core.DocumentChunk) error {
	return &core.VectorStoreError{Op: "insert", Err: errors.New("down")}
}

func (failStore) SearchSimilar(context.Context, []float32, int, string) ([]core.ChunkMatch, error) {
	return nil, nil
}

func (failStore) DeleteBySource(context.Context, string, string) (int, error) {
	return 0, nil
}

func (failStore) Stats(context.Context, string) (core.DocumentStats, error) {
	return core.DocumentStats{}, nil
}

func (failStore) Close() error { return nil }
