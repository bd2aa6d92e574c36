package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Host    string `mapstructure:"HOST"`
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	// Environment
	Environment string `mapstructure:"ENVIRONMENT"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// File storage
	UploadDir string `mapstructure:"UPLOAD_DIR"`

	// Chunking
	ChunkSize    int `mapstructure:"CHUNK_SIZE"`
	MinChunkSize int `mapstructure:"MIN_CHUNK_SIZE"`
	ChunkOverlap int `mapstructure:"CHUNK_OVERLAP"`
	MaxChunks    int `mapstructure:"MAX_CHUNKS"`

	// Retrieval
	TopK int `mapstructure:"TOP_K"`

	// Embedding service (OpenAI compatible)
	EmbeddingAPIKey     string `mapstructure:"EMBEDDING_API_KEY"`
	EmbeddingBaseURL    string `mapstructure:"EMBEDDING_BASE_URL"`
	EmbeddingModel      string `mapstructure:"EMBEDDING_MODEL"`
	EmbeddingDimensions int    `mapstructure:"EMBEDDING_DIMENSIONS"`

	// Chat model (OpenAI compatible)
	ChatAPIKey  string `mapstructure:"CHAT_API_KEY"`
	ChatBaseURL string `mapstructure:"CHAT_BASE_URL"`
	ChatModel   string `mapstructure:"CHAT_MODEL"`
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8086")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/docqa?sslmode=disable")
	viper.SetDefault("UPLOAD_DIR", "./documents")
	viper.SetDefault("CHUNK_SIZE", 800)
	viper.SetDefault("MIN_CHUNK_SIZE", 350)
	viper.SetDefault("CHUNK_OVERLAP", 50)
	viper.SetDefault("MAX_CHUNKS", 10000)
	viper.SetDefault("TOP_K", 5)
	viper.SetDefault("EMBEDDING_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("EMBEDDING_MODEL", "text-embedding-3-small")
	viper.SetDefault("EMBEDDING_DIMENSIONS", 1536)
	viper.SetDefault("CHAT_MODEL", "gpt-4o-mini")

	// Try to read .env file (optional)
	_ = viper.ReadInConfig()

	// Environment variables win over the .env file
	for _, key := range []string{
		"HOST", "PORT", "GIN_MODE", "ENVIRONMENT", "DATABASE_URL", "UPLOAD_DIR",
		"CHUNK_SIZE", "MIN_CHUNK_SIZE", "CHUNK_OVERLAP", "MAX_CHUNKS", "TOP_K",
		"EMBEDDING_API_KEY", "EMBEDDING_BASE_URL", "EMBEDDING_MODEL", "EMBEDDING_DIMENSIONS",
		"CHAT_API_KEY", "CHAT_BASE_URL", "CHAT_MODEL",
	} {
		if val := os.Getenv(key); val != "" {
			viper.Set(key, val)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Environment) == "development"
}
