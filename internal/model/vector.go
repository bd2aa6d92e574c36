package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Chunk is a bounded text segment produced from one page of a source document.
// Chunks are transient: they exist between the splitter and the vector index
// and are never persisted on their own.
type Chunk struct {
	Text       string    `json:"text"`
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Page       int       `json:"page"`
	Index      int       `json:"index"`
}

// VectorRecord is one embedded chunk in the index. Records are append-only:
// deleting the parent document does not remove its vectors.
type VectorRecord struct {
	BaseModel
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	Filename   string          `gorm:"size:500" json:"filename"`
	Content    string          `gorm:"type:text;not null" json:"content"`
	Page       int             `gorm:"default:0" json:"page"`
	ChunkIndex int             `gorm:"default:0" json:"chunk_index"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
	Metadata   JSONMap         `gorm:"type:jsonb" json:"metadata"`
}

func (VectorRecord) TableName() string {
	return "rag_vectors"
}

// ScoredRecord pairs a retrieved record with its cosine distance to the query
// (smaller is closer).
type ScoredRecord struct {
	Record   VectorRecord `json:"record"`
	Distance float64      `json:"distance"`
}
