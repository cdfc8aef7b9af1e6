package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retroboard/internal/jobs"
	"retroboard/internal/llm"
	"retroboard/internal/model"
	"retroboard/internal/service"
)

type PMHandler struct {
	pm     *service.PMService
	logger *zap.Logger
}

func NewPMHandler(pm *service.PMService, logger *zap.Logger) *PMHandler {
	return &PMHandler{pm: pm, logger: logger}
}

// SubmitJob accepts a generation request and returns a job ID immediately.
// Clients poll GetJob until the row reaches a terminal state.
func (h *PMHandler) SubmitJob(c *gin.Context) {
	var input jobs.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(strings.TrimSpace(input.OfferText)) < llm.MinOfferTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer text is required (minimum 50 characters)"})
		return
	}

	id, err := h.pm.SubmitJob(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to submit generation job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": id, "status": model.JobPending})
}

func (h *PMHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.pm.GetJob(c.Request.Context(), id)
	if err != nil {
		if errorsIsNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.logger.Error("failed to fetch job", zap.Int("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch job"})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Generations

func (h *PMHandler) SaveGeneration(c *gin.Context) {
	var g model.PMGeneration
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if g.ProjectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_name is required"})
		return
	}

	if err := h.pm.SaveGeneration(c.Request.Context(), &g); err != nil {
		h.logger.Error("failed to save generation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save generation"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"generation": g})
}

func (h *PMHandler) ListGenerations(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	generations, err := h.pm.ListGenerations(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list generations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch generations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"generations": generations})
}

func (h *PMHandler) DeleteGeneration(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pm.DeleteGeneration(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete generation", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete generation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Templates

func (h *PMHandler) SaveTemplate(c *gin.Context) {
	var t model.PMTemplate
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if t.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.pm.SaveTemplate(c.Request.Context(), &t); err != nil {
		h.logger.Error("failed to save template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save template"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": t})
}

func (h *PMHandler) ListTemplates(c *gin.Context) {
	templates, err := h.pm.ListTemplates(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *PMHandler) DeleteTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pm.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete template", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
