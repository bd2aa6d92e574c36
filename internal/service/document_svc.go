package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tgo/docqa/internal/extract"
	"github.com/tgo/docqa/internal/model"
	"github.com/tgo/docqa/internal/repository"
)

// DocumentService runs the ingestion pipeline and owns the document lifecycle:
// store the raw file, create a PROCESSING metadata record, extract pages,
// chunk, index, then flip the record to READY. Any failed stage flips it to
// ERROR instead and removes the raw file best-effort. Terminal states are
// final; a failed document is retried by uploading it again.
type DocumentService struct {
	repo      *repository.DocumentRepository
	index     VectorIndex
	extractor extract.PageExtractor
	splitter  *TokenSplitter
	uploadDir string
	logger    *slog.Logger
}

func NewDocumentService(repo *repository.DocumentRepository, index VectorIndex, extractor extract.PageExtractor, splitter *TokenSplitter, uploadDir string) *DocumentService {
	return &DocumentService{
		repo:      repo,
		index:     index,
		extractor: extractor,
		splitter:  splitter,
		uploadDir: uploadDir,
		logger:    slog.Default().With("service", "document"),
	}
}

// ProcessDocument ingests one uploaded file and returns its metadata with the
// final status. The returned error is a *model.ProcessingError when any
// pipeline stage fails after the metadata record was created.
func (s *DocumentService) ProcessDocument(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.DocumentMetadata, error) {
	if err := validateUpload(filename, contentType); err != nil {
		return nil, err
	}

	s.logger.Info("starting document processing", "filename", filename, "size", size)

	path, err := s.saveFile(filename, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload %s: %w", filename, err)
	}

	doc := &model.DocumentMetadata{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		UploadDate:  time.Now(),
		Status:      model.DocumentStatusProcessing,
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}
	s.logger.Info("created document record", "id", doc.ID, "status", doc.Status)

	pages, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, s.failDocument(ctx, doc, path, fmt.Errorf("text extraction: %w", err))
	}
	s.logger.Info("extracted pages", "id", doc.ID, "pages", len(pages))

	chunks := s.chunkPages(doc.ID, filename, pages)
	s.logger.Info("split into chunks", "id", doc.ID, "chunks", len(chunks))

	if err := s.index.Add(ctx, chunks); err != nil {
		return nil, s.failDocument(ctx, doc, path, fmt.Errorf("indexing: %w", err))
	}

	affected, err := s.repo.UpdateStatus(ctx, doc.ID, model.DocumentStatusReady)
	if err != nil {
		return nil, s.failDocument(ctx, doc, path, fmt.Errorf("status update: %w", err))
	}
	if !affected {
		return nil, fmt.Errorf("document record vanished during processing: %s", doc.ID)
	}

	doc.Status = model.DocumentStatusReady
	s.logger.Info("document processing completed", "id", doc.ID)
	return doc, nil
}

func validateUpload(filename, contentType string) error {
	if strings.TrimSpace(filename) == "" {
		return model.NewValidationError("filename", "must not be empty")
	}
	isPDF := contentType == "application/pdf" ||
		strings.EqualFold(filepath.Ext(filename), ".pdf")
	if !isPDF {
		return model.NewValidationError("file", "only PDF uploads are supported")
	}
	return nil
}

// saveFile writes the upload under the configured directory at a path derived
// from the filename. A second upload with the same name overwrites the first.
func (s *DocumentService) saveFile(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.uploadDir, filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *DocumentService) chunkPages(docID uuid.UUID, filename string, pages []extract.Page) []model.Chunk {
	var chunks []model.Chunk
	for _, page := range pages {
		for _, text := range s.splitter.Split(page.Text) {
			chunks = append(chunks, model.Chunk{
				Text:       text,
				DocumentID: docID,
				Filename:   filename,
				Page:       page.Number,
				Index:      len(chunks),
			})
		}
	}
	return chunks
}

// failDocument records the stage failure on the metadata row and removes the
// raw file. Vectors already written for this attempt stay in the index.
func (s *DocumentService) failDocument(ctx context.Context, doc *model.DocumentMetadata, path string, cause error) error {
	s.logger.Error("document processing failed", "id", doc.ID, "error", cause)

	message := "Processing failed: " + cause.Error()
	affected, err := s.repo.UpdateStatusWithError(ctx, doc.ID, model.DocumentStatusError, message)
	if err != nil {
		s.logger.Error("failed to record error status", "id", doc.ID, "error", err)
	} else if !affected {
		s.logger.Warn("error status update affected no rows", "id", doc.ID)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to delete file after error", "path", path, "error", err)
	}

	return &model.ProcessingError{Filename: doc.Filename, Err: cause}
}

func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*model.DocumentMetadata, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DocumentService) List(ctx context.Context) ([]model.DocumentMetadata, error) {
	return s.repo.FindAll(ctx)
}

func (s *DocumentService) ListByStatus(ctx context.Context, status model.DocumentStatus) ([]model.DocumentMetadata, error) {
	return s.repo.FindByStatus(ctx, status)
}

func (s *DocumentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Delete removes the raw file and the metadata row. Vectors for the document
// stay in the index; that inconsistency is accepted to keep the index
// append-only.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return model.ErrDocumentNotFound
	}

	path := filepath.Join(s.uploadDir, filepath.Base(doc.Filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to delete document file", "path", path, "error", err)
	}

	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if !affected {
		return model.ErrDocumentNotFound
	}

	s.logger.Info("deleted document", "id", id)
	return nil
}
