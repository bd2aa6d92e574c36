package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/pgvector/pgvector-go"

	"github.com/tgo/docqa/internal/model"
	"github.com/tgo/docqa/internal/repository"
)

// VectorIndex stores embedded chunks and answers nearest-neighbour queries.
// The index is append-only; distance metric and dimension are fixed at
// construction and a mismatched embedding fails the add.
type VectorIndex interface {
	Add(ctx context.Context, chunks []model.Chunk) error
	Search(ctx context.Context, query string, topK int) ([]model.ScoredRecord, error)
}

// PgVectorIndex keeps vectors in Postgres and searches with the pgvector
// cosine distance operator.
type PgVectorIndex struct {
	repo       *repository.VectorRepository
	embedder   Embedder
	dimensions int
}

func NewPgVectorIndex(repo *repository.VectorRepository, embedder Embedder) *PgVectorIndex {
	return &PgVectorIndex{
		repo:       repo,
		embedder:   embedder,
		dimensions: embedder.Dimensions(),
	}
}

func (idx *PgVectorIndex) Add(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings", len(chunks), len(embeddings))
	}

	records := make([]model.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		if got := len(embeddings[i].Slice()); got != idx.dimensions {
			return &model.DimensionError{Want: idx.dimensions, Got: got}
		}
		records[i] = vectorRecordFromChunk(chunk, embeddings[i])
	}

	return idx.repo.CreateBatch(ctx, records)
}

func (idx *PgVectorIndex) Search(ctx context.Context, query string, topK int) ([]model.ScoredRecord, error) {
	if topK <= 0 {
		return nil, model.NewValidationError("topK", "must be positive")
	}

	queryEmbedding, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	return idx.repo.CosineSearch(ctx, queryEmbedding, topK)
}

// MemoryVectorIndex is an in-process index with the same semantics as
// PgVectorIndex. It backs tests and database-free development runs.
type MemoryVectorIndex struct {
	embedder   Embedder
	dimensions int

	mu      sync.RWMutex
	records []model.VectorRecord
}

func NewMemoryVectorIndex(embedder Embedder) *MemoryVectorIndex {
	return &MemoryVectorIndex{
		embedder:   embedder,
		dimensions: embedder.Dimensions(),
	}
}

func (idx *MemoryVectorIndex) Add(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings", len(chunks), len(embeddings))
	}

	records := make([]model.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		if got := len(embeddings[i].Slice()); got != idx.dimensions {
			return &model.DimensionError{Want: idx.dimensions, Got: got}
		}
		records[i] = vectorRecordFromChunk(chunk, embeddings[i])
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.records = append(idx.records, records...)
	return nil
}

func (idx *MemoryVectorIndex) Search(ctx context.Context, query string, topK int) ([]model.ScoredRecord, error) {
	if topK <= 0 {
		return nil, model.NewValidationError("topK", "must be positive")
	}

	queryEmbedding, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]model.ScoredRecord, 0, len(idx.records))
	for _, record := range idx.records {
		results = append(results, model.ScoredRecord{
			Record:   record,
			Distance: cosineDistance(queryEmbedding.Slice(), record.Embedding.Slice()),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func (idx *MemoryVectorIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}

func vectorRecordFromChunk(chunk model.Chunk, embedding pgvector.Vector) model.VectorRecord {
	return model.VectorRecord{
		DocumentID: chunk.DocumentID,
		Filename:   chunk.Filename,
		Content:    chunk.Text,
		Page:       chunk.Page,
		ChunkIndex: chunk.Index,
		Embedding:  embedding,
		Metadata: model.JSONMap{
			"document_id": chunk.DocumentID.String(),
			"filename":    chunk.Filename,
			"page":        chunk.Page,
		},
	}
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
