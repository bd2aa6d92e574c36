package handler

import (
	"net/http"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tgo/docqa/internal/config"
	"github.com/tgo/docqa/internal/extract"
	"github.com/tgo/docqa/internal/repository"
	"github.com/tgo/docqa/internal/service"
)

// Dependencies carries the external collaborators the router cannot build
// itself: the embedding model, the chat model, and the page extractor.
type Dependencies struct {
	Embedder  service.Embedder
	ChatModel einomodel.BaseChatModel
	Extractor extract.PageExtractor
}

func SetupRouter(cfg *config.Config, db *gorm.DB, deps Dependencies) *gin.Engine {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "docqa"})
	})

	// Repositories
	documentRepo := repository.NewDocumentRepository(db)
	vectorRepo := repository.NewVectorRepository(db)

	// Services
	index := service.NewPgVectorIndex(vectorRepo, deps.Embedder)
	splitter := service.NewTokenSplitter(cfg.ChunkSize, cfg.MinChunkSize, cfg.ChunkOverlap, cfg.MaxChunks)
	documentSvc := service.NewDocumentService(documentRepo, index, deps.Extractor, splitter, cfg.UploadDir)
	ragSvc := service.NewRagService(index, deps.ChatModel, cfg.TopK)

	// Handlers
	documentHandler := NewDocumentHandler(documentSvc)
	chatHandler := NewChatHandler(ragSvc)

	api := r.Group("/api/rag")
	{
		documents := api.Group("/documents")
		{
			documents.POST("", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.GET("/count", documentHandler.Count)
			documents.GET("/:id", documentHandler.Get)
			documents.DELETE("/:id", documentHandler.Delete)
		}

		api.POST("/chat", chatHandler.Ask)
	}

	return r
}
