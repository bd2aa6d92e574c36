package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/tgo/docqa/internal/config"
	"github.com/tgo/docqa/internal/database"
	"github.com/tgo/docqa/internal/extract"
	"github.com/tgo/docqa/internal/handler"
	"github.com/tgo/docqa/internal/llm"
	"github.com/tgo/docqa/internal/service"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	chatModel, err := llm.NewChatModel(context.Background(), &llm.Config{
		APIKey:  cfg.ChatAPIKey,
		BaseURL: cfg.ChatBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		log.Fatalf("Failed to create chat model: %v", err)
	}

	embedder := service.NewOpenAIEmbedder(
		cfg.EmbeddingAPIKey,
		cfg.EmbeddingBaseURL,
		cfg.EmbeddingModel,
		cfg.EmbeddingDimensions,
	)

	r := handler.SetupRouter(cfg, db, handler.Dependencies{
		Embedder:  embedder,
		ChatModel: chatModel,
		Extractor: extract.NewPdftotextExtractor(),
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("DocQA service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
