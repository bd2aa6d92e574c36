package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tgo/docqa/internal/service"
)

type ChatHandler struct {
	svc *service.RagService
}

func NewChatHandler(svc *service.RagService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	resp, err := h.svc.AskQuestion(c.Request.Context(), req.Question)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
