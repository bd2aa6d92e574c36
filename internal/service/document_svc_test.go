package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tgo/docqa/internal/extract"
	"github.com/tgo/docqa/internal/model"
	"github.com/tgo/docqa/internal/repository"
)

type fakeExtractor struct {
	pages []extract.Page
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]extract.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.DocumentMetadata{}))
	return db
}

func newTestDocumentService(t *testing.T, extractor extract.PageExtractor) (*DocumentService, *MemoryVectorIndex, string) {
	t.Helper()
	uploadDir := t.TempDir()
	repo := repository.NewDocumentRepository(openTestDB(t))
	index := NewMemoryVectorIndex(newFakeEmbedder(3))
	splitter := NewTokenSplitter(10, 0, 2, 0)
	svc := NewDocumentService(repo, index, extractor, splitter, uploadDir)
	return svc, index, uploadDir
}

func TestProcessDocument_Success(t *testing.T) {
	extractor := &fakeExtractor{pages: []extract.Page{
		{Number: 1, Text: "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"},
		{Number: 2, Text: "one two three four five six seven eight nine ten eleven twelve"},
	}}
	svc, index, uploadDir := newTestDocumentService(t, extractor)

	doc, err := svc.ProcessDocument(context.Background(), "report.pdf", "application/pdf", 42, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, model.DocumentStatusReady, doc.Status)
	assert.Empty(t, doc.ErrorMessage)
	assert.Greater(t, index.Count(), 0)

	// Raw file stays on disk after a successful ingest.
	_, statErr := os.Stat(filepath.Join(uploadDir, "report.pdf"))
	assert.NoError(t, statErr)

	// The stored record reflects the terminal status.
	stored, err := svc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.DocumentStatusReady, stored.Status)
}

func TestProcessDocument_ExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("corrupt PDF")}
	svc, index, uploadDir := newTestDocumentService(t, extractor)

	_, err := svc.ProcessDocument(context.Background(), "broken.pdf", "application/pdf", 10, strings.NewReader("junk"))

	var processingErr *model.ProcessingError
	require.ErrorAs(t, err, &processingErr)
	assert.Equal(t, "broken.pdf", processingErr.Filename)

	// Metadata is flipped to ERROR with a message.
	docs, listErr := svc.ListByStatus(context.Background(), model.DocumentStatusError)
	require.NoError(t, listErr)
	require.Len(t, docs, 1)
	assert.NotEmpty(t, docs[0].ErrorMessage)

	// The raw file is cleaned up and nothing was indexed.
	_, statErr := os.Stat(filepath.Join(uploadDir, "broken.pdf"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, 0, index.Count())
}

func TestProcessDocument_ValidationRejectsNonPDF(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, &fakeExtractor{})

	_, err := svc.ProcessDocument(context.Background(), "notes.txt", "text/plain", 5, strings.NewReader("hello"))

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Nothing was recorded for the rejected upload.
	docs, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, docs)
}

func TestProcessDocument_ValidationRejectsBlankFilename(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, &fakeExtractor{})

	_, err := svc.ProcessDocument(context.Background(), "  ", "application/pdf", 5, strings.NewReader("x"))

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestProcessDocument_EmptyPagesYieldNoChunks(t *testing.T) {
	extractor := &fakeExtractor{pages: []extract.Page{{Number: 1, Text: "   "}}}
	svc, index, _ := newTestDocumentService(t, extractor)

	doc, err := svc.ProcessDocument(context.Background(), "empty.pdf", "application/pdf", 1, strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, model.DocumentStatusReady, doc.Status)
	assert.Equal(t, 0, index.Count())
}

func TestDeleteDocument(t *testing.T) {
	extractor := &fakeExtractor{pages: []extract.Page{{Number: 1, Text: "some page content here"}}}
	svc, index, uploadDir := newTestDocumentService(t, extractor)

	doc, err := svc.ProcessDocument(context.Background(), "todelete.pdf", "application/pdf", 8, strings.NewReader("%PDF"))
	require.NoError(t, err)
	indexed := index.Count()
	require.Greater(t, indexed, 0)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))

	// Metadata and file are gone.
	stored, err := svc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	_, statErr := os.Stat(filepath.Join(uploadDir, "todelete.pdf"))
	assert.True(t, os.IsNotExist(statErr))

	// Vectors survive the delete; the index never shrinks.
	assert.Equal(t, indexed, index.Count())
}

func TestDeleteDocument_NotFound(t *testing.T) {
	svc, _, _ := newTestDocumentService(t, &fakeExtractor{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrDocumentNotFound)
}

func TestDocumentCount(t *testing.T) {
	extractor := &fakeExtractor{pages: []extract.Page{{Number: 1, Text: "content words here"}}}
	svc, _, _ := newTestDocumentService(t, extractor)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.ProcessDocument(context.Background(), "a.pdf", "application/pdf", 1, strings.NewReader("%PDF"))
	require.NoError(t, err)

	count, err = svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
