package rag

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/Darknivht/Agrisense-AI/internal/core"
	"github.com/Darknivht/Agrisense-AI/internal/logger"
)

// CollectionName is the Milvus collection holding document chunks.
const CollectionName = "agrisense_documents"

// DefaultEmbeddingDim is used when no dimension is configured.
const DefaultEmbeddingDim = 1536

// Field names in the chunk collection.
const (
	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldSource      = "source"
	FieldChunkIndex  = "chunk_index"
	FieldTotalChunks = "total_chunks"
	FieldText        = "text"
	FieldRelevance   = "relevance"
	FieldCreatedAt   = "created_at"
	FieldVector      = "vector"
)

// statsQueryLimit caps how many rows a stats scan reads.
const statsQueryLimit = 16384

// MilvusStore persists document chunks in a Milvus collection.
type MilvusStore struct {
	client       *milvusclient.Client
	embeddingDim int

	// sourceLocks serializes writes per source so concurrent ingest and
	// delete of the same document never interleave partial chunk sets.
	mu          sync.Mutex
	sourceLocks map[string]*sync.Mutex
}

var _ core.VectorStore = (*MilvusStore)(nil)

// NewMilvusStore connects to Milvus and ensures the chunk collection exists
// and is loaded.
func NewMilvusStore(ctx context.Context, addr string, embeddingDim int) (*MilvusStore, error) {
	if embeddingDim <= 0 {
		embeddingDim = DefaultEmbeddingDim
	}
	logger.RAGInfo("Connecting to Milvus at %s (dim %d)", addr, embeddingDim)

	client, err := milvusclient.New(ctx, &milvusclient.ClientConfig{Address: addr})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Milvus at %s: %w", addr, err)
	}

	s := &MilvusStore{
		client:       client,
		embeddingDim: embeddingDim,
		sourceLocks:  make(map[string]*sync.Mutex),
	}
	if err := s.ensureCollection(ctx); err != nil {
		client.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MilvusStore) ensureCollection(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(CollectionName))
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", CollectionName, err)
	}

	if !exists {
		schema := &entity.Schema{
			CollectionName: CollectionName,
			Description:    "Agricultural document chunks for retrieval",
			Fields: []*entity.Field{
				{
					Name:       FieldID,
					DataType:   entity.FieldTypeVarChar,
					PrimaryKey: true,
					AutoID:     false,
					TypeParams: map[string]string{"max_length": "255"},
				},
				{
					Name:       FieldOwnerID,
					DataType:   entity.FieldTypeVarChar,
					TypeParams: map[string]string{"max_length": "100"},
				},
				{
					Name:       FieldSource,
					DataType:   entity.FieldTypeVarChar,
					TypeParams: map[string]string{"max_length": "500"},
				},
				{
					Name:     FieldChunkIndex,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:     FieldTotalChunks,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:       FieldText,
					DataType:   entity.FieldTypeVarChar,
					TypeParams: map[string]string{"max_length": "65535"},
				},
				{
					Name:     FieldRelevance,
					DataType: entity.FieldTypeFloat,
				},
				{
					Name:     FieldCreatedAt,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:       FieldVector,
					DataType:   entity.FieldTypeFloatVector,
					TypeParams: map[string]string{"dim": fmt.Sprintf("%d", s.embeddingDim)},
				},
			},
		}

		if err := s.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(CollectionName, schema)); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", CollectionName, err)
		}

		vectorIdx := index.NewHNSWIndex(entity.L2, 16, 200)
		if _, err := s.client.CreateIndex(ctx, milvusclient.NewCreateIndexOption(CollectionName, FieldVector, vectorIdx)); err != nil {
			return fmt.Errorf("failed to create vector index on %s: %w", CollectionName, err)
		}
		logger.RAGInfo("Created collection: %s", CollectionName)
	}

	if _, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(CollectionName)); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", CollectionName, err)
	}
	return nil
}

func (s *MilvusStore) sourceLock(source string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sourceLocks[source]
	if !ok {
		l = &sync.Mutex{}
		s.sourceLocks[source] = l
	}
	return l
}

// InsertChunks stores a batch of chunks belonging to one source.
func (s *MilvusStore) InsertChunks(ctx context.Context, chunks []core.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	lock := s.sourceLock(chunks[0].Source)
	lock.Lock()
	defer lock.Unlock()

	ids := make([]string, len(chunks))
	owners := make([]string, len(chunks))
	sources := make([]string, len(chunks))
	indexes := make([]int64, len(chunks))
	totals := make([]int64, len(chunks))
	texts := make([]string, len(chunks))
	relevances := make([]float32, len(chunks))
	created := make([]int64, len(chunks))
	vectors := make([][]float32, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.ID
		owners[i] = ch.OwnerID
		sources[i] = ch.Source
		indexes[i] = int64(ch.Index)
		totals[i] = int64(ch.TotalChunks)
		texts[i] = ch.Text
		relevances[i] = float32(ch.Relevance)
		created[i] = ch.CreatedAt
		vectors[i] = ch.Vector
	}

	insertOpt := milvusclient.NewColumnBasedInsertOption(CollectionName,
		column.NewColumnVarChar(FieldID, ids),
		column.NewColumnVarChar(FieldOwnerID, owners),
		column.NewColumnVarChar(FieldSource, sources),
		column.NewColumnInt64(FieldChunkIndex, indexes),
		column.NewColumnInt64(FieldTotalChunks, totals),
		column.NewColumnVarChar(FieldText, texts),
		column.NewColumnFloat(FieldRelevance, relevances),
		column.NewColumnInt64(FieldCreatedAt, created),
		column.NewColumnFloatVector(FieldVector, s.embeddingDim, vectors),
	)
	if _, err := s.client.Insert(ctx, insertOpt); err != nil {
		return &core.VectorStoreError{Op: "insert", Err: err}
	}

	logger.RAGInfo("Stored %d chunks for %s", len(chunks), chunks[0].Source)
	return nil
}

// SearchSimilar returns up to k chunks nearest to the query vector.
func (s *MilvusStore) SearchSimilar(ctx context.Context, vector []float32, k int, ownerID string) ([]core.ChunkMatch, error) {
	if k <= 0 {
		k = 5
	}

	searchOpt := milvusclient.NewSearchOption(CollectionName, k, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(FieldVector).
		WithOutputFields(FieldOwnerID, FieldSource, FieldChunkIndex, FieldTotalChunks, FieldText, FieldRelevance, FieldCreatedAt)
	if ownerID != "" {
		searchOpt = searchOpt.WithFilter(fmt.Sprintf(`%s == %s`, FieldOwnerID, exprString(ownerID)))
	}

	results, err := s.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, &core.VectorStoreError{Op: "search", Err: err}
	}
	if len(results) == 0 {
		return nil, nil
	}

	rs := results[0]
	matches := make([]core.ChunkMatch, 0, rs.ResultCount)
	for i := 0; i < rs.ResultCount; i++ {
		chunk := core.DocumentChunk{
			OwnerID:     columnString(rs.GetColumn(FieldOwnerID), i),
			Source:      columnString(rs.GetColumn(FieldSource), i),
			Index:       int(columnInt64(rs.GetColumn(FieldChunkIndex), i)),
			TotalChunks: int(columnInt64(rs.GetColumn(FieldTotalChunks), i)),
			Text:        columnString(rs.GetColumn(FieldText), i),
			Relevance:   columnFloat(rs.GetColumn(FieldRelevance), i),
			CreatedAt:   columnInt64(rs.GetColumn(FieldCreatedAt), i),
		}
		if rs.IDs != nil {
			if id, err := rs.IDs.GetAsString(i); err == nil {
				chunk.ID = id
			}
		}
		var distance float32
		if i < len(rs.Scores) {
			distance = rs.Scores[i]
		}
		matches = append(matches, core.ChunkMatch{Chunk: chunk, Distance: distance})
	}

	logger.RAGDebug("Search returned %d of up to %d chunks", len(matches), k)
	return matches, nil
}

// DeleteBySource removes every chunk of the named source.
func (s *MilvusStore) DeleteBySource(ctx context.Context, source, ownerID string) (int, error) {
	lock := s.sourceLock(source)
	lock.Lock()
	defer lock.Unlock()

	expr := fmt.Sprintf(`%s == %s`, FieldSource, exprString(source))
	if ownerID != "" {
		expr += fmt.Sprintf(` && %s == %s`, FieldOwnerID, exprString(ownerID))
	}

	res, err := s.client.Delete(ctx, milvusclient.NewDeleteOption(CollectionName).WithExpr(expr))
	if err != nil {
		return 0, &core.VectorStoreError{Op: "delete", Err: err}
	}

	deleted := int(res.DeleteCount)
	logger.RAGInfo("Deleted %d chunks of %s", deleted, source)
	return deleted, nil
}

// Stats summarizes the collection contents.
func (s *MilvusStore) Stats(ctx context.Context, ownerID string) (core.DocumentStats, error) {
	queryOpt := milvusclient.NewQueryOption(CollectionName).
		WithOutputFields(FieldSource, FieldOwnerID).
		WithLimit(statsQueryLimit)

	rs, err := s.client.Query(ctx, queryOpt)
	if err != nil {
		return core.DocumentStats{}, &core.VectorStoreError{Op: "query", Err: err}
	}

	stats := core.DocumentStats{}
	srcCol := rs.GetColumn(FieldSource)
	ownerCol := rs.GetColumn(FieldOwnerID)
	if srcCol == nil {
		return stats, nil
	}

	sources := make(map[string]struct{})
	for i := 0; i < srcCol.Len(); i++ {
		src, err := srcCol.GetAsString(i)
		if err != nil {
			continue
		}
		sources[src] = struct{}{}
		stats.TotalChunks++
		if ownerID != "" && ownerCol != nil {
			if owner, err := ownerCol.GetAsString(i); err == nil && owner == ownerID {
				stats.UserChunks++
			}
		}
	}
	stats.TotalDocuments = len(sources)
	return stats, nil
}

// Close releases the Milvus connection.
func (s *MilvusStore) Close() error {
	return s.client.Close(context.Background())
}

// exprString quotes a value for a Milvus filter expression, escaping
// backslashes and quotes so an uploaded filename cannot widen the filter.
func exprString(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

func columnString(col column.Column, i int) string {
	if col == nil {
		return ""
	}
	v, err := col.GetAsString(i)
	if err != nil {
		return ""
	}
	return v
}

func columnInt64(col column.Column, i int) int64 {
	if col == nil {
		return 0
	}
	v, err := col.GetAsInt64(i)
	if err != nil {
		return 0
	}
	return v
}

func columnFloat(col column.Column, i int) float64 {
	if col == nil {
		return 0
	}
	v, err := col.GetAsDouble(i)
	if err != nil {
		return 0
	}
	return v
}
