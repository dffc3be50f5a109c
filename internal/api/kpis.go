package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

type createKPIRequest struct {
	Name           string   `json:"name"`
	Formula        string   `json:"formula"`
	RoomID         *string  `json:"roomId"`
	SourceFieldIDs []string `json:"sourceFieldIds"`
}

// CreateKPI stores a KPI definition. Formula evaluation is the
// calculation backend's job.
// POST /api/kpis
func (h *Handler) CreateKPI(c *gin.Context) {
	var req createKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kpi name is required"})
		return
	}
	if req.SourceFieldIDs == nil {
		req.SourceFieldIDs = []string{}
	}

	kpi := &model.KPI{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Formula:        req.Formula,
		RoomID:         req.RoomID,
		SourceFieldIDs: req.SourceFieldIDs,
	}
	if err := h.store.CreateKPI(kpi); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.GetKPI(kpi.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListKPIs lists KPI definitions.
// GET /api/kpis
func (h *Handler) ListKPIs(c *gin.Context) {
	kpis, err := h.store.ListKPIs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if kpis == nil {
		kpis = []*model.KPI{}
	}
	c.JSON(http.StatusOK, kpis)
}

type updateKPIRequest struct {
	Name           *string  `json:"name"`
	Formula        *string  `json:"formula"`
	SourceFieldIDs []string `json:"sourceFieldIds"`
}

// UpdateKPI patches a KPI definition.
// PATCH /api/kpis/:id
func (h *Handler) UpdateKPI(c *gin.Context) {
	var req updateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	kpi, err := h.store.UpdateKPI(c.Param("id"), req.Name, req.Formula, req.SourceFieldIDs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "kpi not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, kpi)
}

// DeleteKPI removes a KPI definition.
// DELETE /api/kpis/:id
func (h *Handler) DeleteKPI(c *gin.Context) {
	if err := h.store.DeleteKPI(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "kpi not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
