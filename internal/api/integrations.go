package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

// ListProviders returns the integration catalog.
// GET /api/integrations/providers
func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": model.Providers})
}

type createIntegrationRequest struct {
	Provider string `json:"provider"`
	Label    string `json:"label"`
}

// CreateIntegration records a connection. The OAuth handshake and sync
// execution run in the integration backend; the record starts pending.
// POST /api/integrations
func (h *Handler) CreateIntegration(c *gin.Context) {
	var req createIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !model.ValidProvider(req.Provider) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider"})
		return
	}

	integration := &model.Integration{
		ID:       uuid.NewString(),
		Provider: req.Provider,
		Label:    req.Label,
		Status:   model.IntegrationPending,
	}
	if err := h.store.CreateIntegration(integration); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.GetIntegration(integration.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListIntegrations lists connection records.
// GET /api/integrations
func (h *Handler) ListIntegrations(c *gin.Context) {
	integrations, err := h.store.ListIntegrations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if integrations == nil {
		integrations = []*model.Integration{}
	}
	c.JSON(http.StatusOK, integrations)
}

type updateIntegrationRequest struct {
	Status string `json:"status"`
}

// UpdateIntegrationStatus moves a connection between
// pending/connected/error.
// PATCH /api/integrations/:id
func (h *Handler) UpdateIntegrationStatus(c *gin.Context) {
	var req updateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	switch req.Status {
	case model.IntegrationPending, model.IntegrationConnected, model.IntegrationError:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := h.store.SetIntegrationStatus(c.Param("id"), req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "integration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.GetIntegration(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteIntegration removes a connection record.
// DELETE /api/integrations/:id
func (h *Handler) DeleteIntegration(c *gin.Context) {
	if err := h.store.DeleteIntegration(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "integration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
