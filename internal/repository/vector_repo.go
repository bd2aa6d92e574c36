package repository

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/tgo/docqa/internal/model"
)

// VectorRepository is append-only storage for embedded chunks. There is no
// update or delete path; the index only ever grows.
type VectorRepository struct {
	db *gorm.DB
}

func NewVectorRepository(db *gorm.DB) *VectorRepository {
	return &VectorRepository{db: db}
}

func (r *VectorRepository) CreateBatch(ctx context.Context, records []model.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

// CosineSearch returns the topK records nearest the query embedding under
// cosine distance, nearest first.
func (r *VectorRepository) CosineSearch(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.ScoredRecord, error) {
	var rows []struct {
		model.VectorRecord
		Distance float64 `gorm:"column:distance"`
	}

	err := r.db.WithContext(ctx).
		Table("rag_vectors").
		Select("*, embedding <=> ? as distance", embedding).
		Where("embedding IS NOT NULL").
		Order("distance ASC").
		Limit(topK).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]model.ScoredRecord, 0, len(rows))
	for _, row := range rows {
		results = append(results, model.ScoredRecord{
			Record:   row.VectorRecord,
			Distance: row.Distance,
		})
	}
	return results, nil
}

func (r *VectorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VectorRecord{}).Count(&count).Error
	return count, err
}
