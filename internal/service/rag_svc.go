package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/tgo/docqa/internal/model"
)

const (
	snippetMaxLen = 200

	degradedAnswer = "Sorry, I encountered an error while processing your question. Please try again."

	ragSystemPrompt = `You are a helpful assistant that answers questions using the provided document excerpts.
Base your answer only on the excerpts. If they do not contain the answer, say so.`

	ragUserPrompt = `Document excerpts:
%s

Question: %s`
)

// RagService answers questions by retrieving relevant chunks from the vector
// index and handing them to the chat model as context. Retrieval or model
// failures never reach the caller as errors: the service degrades to a canned
// answer with no sources.
type RagService struct {
	index  VectorIndex
	chat   einomodel.BaseChatModel
	topK   int
	logger *slog.Logger
}

func NewRagService(index VectorIndex, chat einomodel.BaseChatModel, topK int) *RagService {
	if topK <= 0 {
		topK = 5
	}
	return &RagService{
		index:  index,
		chat:   chat,
		topK:   topK,
		logger: slog.Default().With("service", "rag"),
	}
}

// AskQuestion runs the retrieval-augmented answer flow. A blank question is
// rejected with a *model.ValidationError before any retrieval happens.
func (s *RagService) AskQuestion(ctx context.Context, question string) (*model.RagResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, model.NewValidationError("question", "must not be blank")
	}

	s.logger.Info("processing question", "question", question)

	hits, err := s.index.Search(ctx, question, s.topK)
	if err != nil {
		s.logger.Error("similarity search failed", "error", err)
		return &model.RagResponse{Answer: degradedAnswer, Sources: []model.Source{}}, nil
	}

	answer, err := s.generate(ctx, question, hits)
	if err != nil {
		s.logger.Error("answer generation failed", "error", err)
		return &model.RagResponse{Answer: degradedAnswer, Sources: []model.Source{}}, nil
	}

	sources := extractSources(hits)
	s.logger.Info("generated answer", "sources", len(sources))

	return &model.RagResponse{Answer: answer, Sources: sources}, nil
}

func (s *RagService) generate(ctx context.Context, question string, hits []model.ScoredRecord) (string, error) {
	var excerpts strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&excerpts, "[%d] %s\n", i+1, hit.Record.Content)
	}

	messages := []*schema.Message{
		schema.SystemMessage(ragSystemPrompt),
		schema.UserMessage(fmt.Sprintf(ragUserPrompt, excerpts.String(), question)),
	}

	reply, err := s.chat.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	return reply.Content, nil
}

// extractSources derives one citation per contributing document, keeping
// first-seen order across the ranked hits.
func extractSources(hits []model.ScoredRecord) []model.Source {
	sources := make([]model.Source, 0, len(hits))
	seen := make(map[string]bool, len(hits))

	for _, hit := range hits {
		docID := hit.Record.DocumentID.String()
		if seen[docID] {
			continue
		}
		seen[docID] = true

		snippet := hit.Record.Content
		if len(snippet) > snippetMaxLen {
			snippet = snippet[:snippetMaxLen] + "..."
		}

		sources = append(sources, model.Source{
			Content:  snippet,
			Filename: hit.Record.Filename,
			Metadata: model.JSONMap{
				"document_id": docID,
				"snippet":     snippet,
			},
		})
	}

	return sources
}
