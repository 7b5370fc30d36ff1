package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Darknivht/Agrisense-AI/internal/chunker"
	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
	"github.com/Darknivht/Agrisense-AI/internal/relevance"
)

// LowRelevanceThreshold flags uploads that look non-agricultural. They are
// still ingested; the score is only logged.
const LowRelevanceThreshold = 0.1

// embedBatchSize keeps embedding requests within the API batch limit.
const embedBatchSize = 100

// Pipeline turns uploaded documents into embedded chunks in the vector
// store.
type Pipeline struct {
	store     core.VectorStore
	embedder  core.EmbedService
	scorer    *relevance.Scorer
	splitter  *chunker.Splitter
	extractor TextExtractor
	tmpDir    string
}

// NewPipeline wires an ingestion pipeline. The embedder may be nil, in
// which case every ingest fails with ErrEmbeddingUnavailable.
func NewPipeline(store core.VectorStore, embedder core.EmbedService, scorer *relevance.Scorer, splitter *chunker.Splitter) *Pipeline {
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		scorer:    scorer,
		splitter:  splitter,
		extractor: PDFExtractor{},
		tmpDir:    os.TempDir(),
	}
}

// SetExtractor overrides the default PDF extractor.
func (p *Pipeline) SetExtractor(e TextExtractor) {
	p.extractor = e
}

// SetTempDir overrides where uploads are spooled during extraction.
func (p *Pipeline) SetTempDir(dir string) {
	p.tmpDir = dir
}

// ProcessDocument ingests one uploaded file and returns the opaque storage
// key callers persist alongside the original filename. The spooled upload
// is removed on every exit path.
func (p *Pipeline) ProcessDocument(ctx context.Context, file io.Reader, filename, ownerID string) (string, error) {
	if p.embedder == nil {
		return "", core.ErrEmbeddingUnavailable
	}

	storageKey := strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(filename)
	tmpPath := filepath.Join(p.tmpDir, storageKey)

	if err := spool(file, tmpPath); err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	text, err := p.extractor.Extract(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", core.ErrEmptyDocument
	}

	if score := p.scorer.Score(text); score < LowRelevanceThreshold {
		logger.RAGWarn("Document %s has low agricultural relevance: %.3f", filename, score)
	}

	pieces := p.splitter.Split(text)
	now := time.Now().Unix()
	chunks := make([]core.DocumentChunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = core.DocumentChunk{
			ID:          fmt.Sprintf("%s_%d", storageKey, i),
			OwnerID:     ownerID,
			Source:      filename,
			Index:       i,
			TotalChunks: len(pieces),
			Text:        piece,
			Relevance:   p.scorer.Score(piece),
			CreatedAt:   now,
		}
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		texts := make([]string, 0, end-start)
		for _, ch := range chunks[start:end] {
			texts = append(texts, ch.Text)
		}
		vectors, err := p.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return "", fmt.Errorf("failed to embed chunks of %s: %w", filename, err)
		}
		for j, v := range vectors {
			chunks[start+j].Vector = v
		}
	}

	if err := p.store.InsertChunks(ctx, chunks); err != nil {
		return "", err
	}

	logger.RAGInfo("Processed %s -> %s (%d chunks)", filename, storageKey, len(chunks))
	return storageKey, nil
}

// DeleteDocument removes every chunk of the named source and reports how
// many were deleted.
func (p *Pipeline) DeleteDocument(ctx context.Context, source, ownerID string) (int, error) {
	return p.store.DeleteBySource(ctx, source, ownerID)
}

// Stats summarizes the vector store contents.
func (p *Pipeline) Stats(ctx context.Context, ownerID string) (core.DocumentStats, error) {
	return p.store.Stats(ctx, ownerID)
}

func spool(src io.Reader, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to save upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to flush upload: %w", err)
	}
	return nil
}
