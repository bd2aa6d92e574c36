package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestExtract_SplitsPagesOnFormFeed(t *testing.T) {
	runner := &mockRunner{output: []byte("page one text\fpage two text\fpage three text")}
	extractor := NewPdftotextExtractorWithRunner(runner)

	pages, err := extractor.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, Page{Number: 1, Text: "page one text"}, pages[0])
	assert.Equal(t, Page{Number: 2, Text: "page two text"}, pages[1])
	assert.Equal(t, Page{Number: 3, Text: "page three text"}, pages[2])
}

func TestExtract_SkipsBlankPagesKeepsNumbering(t *testing.T) {
	runner := &mockRunner{output: []byte("first\f   \fthird")}
	extractor := NewPdftotextExtractorWithRunner(runner)

	pages, err := extractor.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 3, pages[1].Number)
}

func TestExtract_EmptyOutput(t *testing.T) {
	extractor := NewPdftotextExtractorWithRunner(&mockRunner{output: nil})

	pages, err := extractor.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestExtract_CommandError(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	extractor := NewPdftotextExtractorWithRunner(runner)

	_, err := extractor.Extract(context.Background(), "broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}
