package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tgo/docqa/internal/model"
)

// DocumentRepository owns the document metadata table. Status transitions go
// through UpdateStatus/UpdateStatusWithError so callers can detect writes
// against ids that do not exist.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Save upserts by id. A missing id is generated before the insert.
func (r *DocumentRepository) Save(ctx context.Context, doc *model.DocumentMetadata) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"filename", "content_type", "size", "status", "error_message", "updated_at",
		}),
	}).Create(doc).Error
}

// FindByID returns (nil, nil) when no row matches; absence is an expected
// read result, not an error.
func (r *DocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DocumentMetadata, error) {
	var doc model.DocumentMetadata
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) FindAll(ctx context.Context) ([]model.DocumentMetadata, error) {
	var docs []model.DocumentMetadata
	err := r.db.WithContext(ctx).Order("upload_date DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) FindByStatus(ctx context.Context, status model.DocumentStatus) ([]model.DocumentMetadata, error) {
	var docs []model.DocumentMetadata
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("upload_date DESC").Find(&docs).Error
	return docs, err
}

// UpdateStatus transitions a document's status. The bool reports whether a
// row was actually affected; false means the id does not exist and the caller
// must treat that as a logic error.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DocumentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.DocumentMetadata{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *DocumentRepository) UpdateStatusWithError(ctx context.Context, id uuid.UUID, status model.DocumentStatus, errorMessage string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.DocumentMetadata{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errorMessage,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// DeleteByID removes the metadata row only; vectors for the document stay in
// the index.
func (r *DocumentRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DocumentMetadata{})
	return res.RowsAffected > 0, res.Error
}

func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentMetadata{}).Count(&count).Error
	return count, err
}
