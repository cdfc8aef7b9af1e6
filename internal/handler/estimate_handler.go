package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retroboard/internal/service"
)

type EstimateHandler struct {
	estimates *service.EstimateService
	logger    *zap.Logger
}

func NewEstimateHandler(estimates *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{estimates: estimates, logger: logger}
}

func (h *EstimateHandler) Generate(c *gin.Context) {
	var req service.GenerateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.BriefText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brief_text is required"})
		return
	}

	// a parse failure still returns 200 with the raw text attached
	result, err := h.estimates.Generate(c.Request.Context(), req)
	if err != nil {
		respondCompletionError(c, h.logger, "estimate", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EstimateHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	estimates, err := h.estimates.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list estimates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch estimates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

func (h *EstimateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.estimates.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete estimate", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete estimate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
