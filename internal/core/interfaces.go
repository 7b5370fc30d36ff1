package core

import "context"

// EmbedService converts text into fixed-length vectors for similarity
// search.
type EmbedService interface {
	// EmbedQuery embeds a single piece of text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedDocuments embeds a batch of texts, preserving order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the length of the vectors this service produces.
	Dimension() int
}

// VectorStore is the shared index of document chunks.
type VectorStore interface {
	// InsertChunks stores a batch of chunks belonging to one source.
	InsertChunks(ctx context.Context, chunks []DocumentChunk) error
	// SearchSimilar returns up to k chunks nearest to the query vector.
	// A non-empty ownerID restricts results to that user's documents.
	SearchSimilar(ctx context.Context, vector []float32, k int, ownerID string) ([]ChunkMatch, error)
	// DeleteBySource removes every chunk of the named source and reports
	// how many were deleted. A non-empty ownerID restricts the delete to
	// that user's chunks.
	DeleteBySource(ctx context.Context, source, ownerID string) (int, error)
	// Stats summarizes the index contents.
	Stats(ctx context.Context, ownerID string) (DocumentStats, error)
	// Close releases the underlying connection.
	Close() error
}
