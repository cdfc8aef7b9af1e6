package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"retroboard/internal/model"
	"retroboard/internal/service"
)

type ProjectHandler struct {
	projects  *service.ProjectService
	analytics *service.AnalyticsService
	logger    *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, analytics *service.AnalyticsService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, analytics: analytics, logger: logger}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get returns the full record graph plus derived metrics. Metrics are
// computed on every read.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	snap, err := h.projects.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		if errorsIsNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("failed to load project", zap.Int("project_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": snap.Detail,
		"metrics": snap.Metrics,
	})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.projects.Create(c.Request.Context(), &p)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"project": created})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = id

	updated, err := h.projects.Update(c.Request.Context(), &p)
	if err != nil {
		if errorsIsNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("failed to update project", zap.Int("project_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"project": updated})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete project", zap.Int("project_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Profile hours

func (h *ProjectHandler) UpsertProfileHours(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var ph model.ProfileHours
	if err := c.ShouldBindJSON(&ph); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ph.ProjectID = projectID

	if err := h.projects.UpsertProfileHours(c.Request.Context(), &ph); err != nil {
		if !model.ValidProfile(ph.Profile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to upsert profile hours", zap.Int("project_id", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile hours"})
		return
	}

	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"profile_hours": ph})
}

func (h *ProjectHandler) DeleteProfileHours(c *gin.Context) {
	id, ok := pathID(c, "hoursId")
	if !ok {
		return
	}
	if err := h.projects.DeleteProfileHours(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete profile hours", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile hours"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Scope items

func (h *ProjectHandler) CreateScopeItem(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var si model.ScopeItem
	if err := c.ShouldBindJSON(&si); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	si.ProjectID = projectID

	if err := h.projects.CreateScopeItem(c.Request.Context(), &si); err != nil {
		h.logger.Error("failed to create scope item", zap.Int("project_id", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create scope item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"scope_item": si})
}

func (h *ProjectHandler) UpdateScopeItem(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var si model.ScopeItem
	if err := c.ShouldBindJSON(&si); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	si.ID = id

	if err := h.projects.UpdateScopeItem(c.Request.Context(), &si); err != nil {
		h.logger.Error("failed to update scope item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update scope item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scope_item": si})
}

func (h *ProjectHandler) DeleteScopeItem(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.projects.DeleteScopeItem(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete scope item", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete scope item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// External costs

func (h *ProjectHandler) CreateExternalCost(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var ec model.ExternalCost
	if err := c.ShouldBindJSON(&ec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ec.ProjectID = projectID

	if err := h.projects.CreateExternalCost(c.Request.Context(), &ec); err != nil {
		h.logger.Error("failed to create external cost", zap.Int("project_id", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create external cost"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"external_cost": ec})
}

func (h *ProjectHandler) UpdateExternalCost(c *gin.Context) {
	id, ok := pathID(c, "costId")
	if !ok {
		return
	}

	var ec model.ExternalCost
	if err := c.ShouldBindJSON(&ec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ec.ID = id

	if err := h.projects.UpdateExternalCost(c.Request.Context(), &ec); err != nil {
		h.logger.Error("failed to update external cost", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update external cost"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"external_cost": ec})
}

func (h *ProjectHandler) DeleteExternalCost(c *gin.Context) {
	id, ok := pathID(c, "costId")
	if !ok {
		return
	}
	if err := h.projects.DeleteExternalCost(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete external cost", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete external cost"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Change requests

func (h *ProjectHandler) CreateChangeRequest(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var cr model.ChangeRequest
	if err := c.ShouldBindJSON(&cr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cr.ProjectID = projectID

	if err := h.projects.CreateChangeRequest(c.Request.Context(), &cr); err != nil {
		h.logger.Error("failed to create change request", zap.Int("project_id", projectID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create change request"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"change_request": cr})
}

func (h *ProjectHandler) UpdateChangeRequest(c *gin.Context) {
	id, ok := pathID(c, "crId")
	if !ok {
		return
	}

	var cr model.ChangeRequest
	if err := c.ShouldBindJSON(&cr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cr.ID = id

	if err := h.projects.UpdateChangeRequest(c.Request.Context(), &cr); err != nil {
		h.logger.Error("failed to update change request", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update change request"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"change_request": cr})
}

func (h *ProjectHandler) DeleteChangeRequest(c *gin.Context) {
	id, ok := pathID(c, "crId")
	if !ok {
		return
	}
	if err := h.projects.DeleteChangeRequest(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete change request", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete change request"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProjectHandler) UpsertChangeRequestHours(c *gin.Context) {
	crID, ok := pathID(c, "crId")
	if !ok {
		return
	}

	var crh model.ChangeRequestHours
	if err := c.ShouldBindJSON(&crh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	crh.ChangeRequestID = crID

	if err := h.projects.UpsertChangeRequestHours(c.Request.Context(), &crh); err != nil {
		if !model.ValidProfile(crh.Profile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to upsert change request hours", zap.Int("change_request_id", crID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save change request hours"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"change_request_hours": crh})
}

func (h *ProjectHandler) DeleteChangeRequestHours(c *gin.Context) {
	id, ok := pathID(c, "hoursId")
	if !ok {
		return
	}
	if err := h.projects.DeleteChangeRequestHours(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete change request hours", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete change request hours"})
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// wrapped repo errors still carry pgx.ErrNoRows
func errorsIsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
