// Package llm builds chat model clients for OpenAI-compatible providers.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewChatModel(ctx context.Context, cfg *Config) (einomodel.ToolCallingChatModel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("chat model config is nil")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("chat model name is required")
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
}
