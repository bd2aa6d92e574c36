package service

import (
	"context"
	"errors"
	"sync/atomic"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/pgvector/pgvector-go"
)

// fakeEmbedder returns canned vectors by exact text match and a constant
// fallback for everything else. Deterministic so search ordering is stable.
type fakeEmbedder struct {
	dims    int
	vectors map[string][]float32
	err     error
	calls   atomic.Int64
}

func newFakeEmbedder(dims int) *fakeEmbedder {
	return &fakeEmbedder{dims: dims, vectors: make(map[string][]float32)}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	f.calls.Add(1)
	if v, ok := f.vectors[text]; ok {
		return pgvector.NewVector(v), nil
	}
	v := make([]float32, f.dims)
	v[0] = 1
	return pgvector.NewVector(v), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	out := make([]pgvector.Vector, 0, len(texts))
	for _, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int {
	return f.dims
}

// fakeChatModel satisfies the eino chat model contract with a fixed reply.
type fakeChatModel struct {
	reply string
	err   error
	calls atomic.Int64
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}
