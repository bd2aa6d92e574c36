package service

import (
	"strings"
)

const (
	defaultChunkSize    = 800
	defaultMinChunkSize = 350
	defaultChunkOverlap = 50
	defaultMaxChunks    = 10000
)

// TokenSplitter splits a block of text into overlapping token windows.
// chunkSize and overlap are measured in tokens (whitespace-delimited words);
// minChunkSize is measured in characters and drops runt chunks except the
// final one of a block. Splitting is deterministic: identical input and
// configuration always yield the same sequence.
type TokenSplitter struct {
	chunkSize    int
	minChunkSize int
	overlap      int
	maxChunks    int
}

func NewTokenSplitter(chunkSize, minChunkSize, overlap, maxChunks int) *TokenSplitter {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if minChunkSize < 0 {
		minChunkSize = defaultMinChunkSize
	}
	if overlap < 0 {
		overlap = defaultChunkOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if maxChunks <= 0 {
		maxChunks = defaultMaxChunks
	}
	return &TokenSplitter{
		chunkSize:    chunkSize,
		minChunkSize: minChunkSize,
		overlap:      overlap,
		maxChunks:    maxChunks,
	}
}

// Split returns the ordered chunks for one text block. An empty or
// whitespace-only block yields no chunks.
func (s *TokenSplitter) Split(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	step := s.chunkSize - s.overlap

	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + s.chunkSize
		last := false
		if end >= len(tokens) {
			end = len(tokens)
			last = true
		}

		chunk := strings.Join(tokens[start:end], " ")

		// Runt chunks are dropped unless they close out the block.
		if len(chunk) >= s.minChunkSize || last {
			chunks = append(chunks, chunk)
		}

		if last || len(chunks) >= s.maxChunks {
			break
		}
	}

	return chunks
}
