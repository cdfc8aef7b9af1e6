package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retroboard/internal/llm"
	"retroboard/internal/service"
)

type AssistantHandler struct {
	assistant *service.AssistantService
	logger    *zap.Logger
}

func NewAssistantHandler(assistant *service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, logger: logger}
}

type chatRequest struct {
	Messages        []llm.Message `json:"messages"`
	ProjectsContext string        `json:"projects_context"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages array required"})
		return
	}

	message, err := h.assistant.Chat(c.Request.Context(), req.Messages, req.ProjectsContext)
	if err != nil {
		respondCompletionError(c, h.logger, "chat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// respondCompletionError maps completion failures onto HTTP statuses: the
// provider's own status is forwarded, anything else is a 500.
func respondCompletionError(c *gin.Context, logger *zap.Logger, feature string, err error) {
	var ue *llm.UpstreamError
	if errors.As(err, &ue) {
		logger.Warn("completion provider error",
			zap.String("feature", feature),
			zap.Int("status", ue.StatusCode))
		c.JSON(ue.StatusCode, gin.H{"error": "completion provider error"})
		return
	}

	logger.Error("completion failed", zap.String("feature", feature), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
