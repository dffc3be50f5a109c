package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

type createFieldRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	RoomID   *string `json:"roomId"`
	Interval string  `json:"interval"`
}

// CreateField creates a trackable field.
// POST /api/fields
func (h *Handler) CreateField(c *gin.Context) {
	var req createFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field name is required"})
		return
	}
	if req.Interval == "" {
		req.Interval = model.IntervalDaily
	}
	if !model.ValidInterval(req.Interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entry interval"})
		return
	}

	field := &model.Field{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Unit:     req.Unit,
		RoomID:   req.RoomID,
		Interval: req.Interval,
	}
	if err := h.store.CreateField(field); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.GetField(field.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListFields lists fields, optionally narrowed to one room's subtree
// or one interval.
// GET /api/fields?room_id=&interval=
func (h *Handler) ListFields(c *gin.Context) {
	opts := store.FieldQueryOptions{}
	if roomID := c.Query("room_id"); roomID != "" {
		roomIDs, err := h.store.RoomWithDescendants(roomID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		opts.RoomIDs = roomIDs
	}
	if interval := c.Query("interval"); interval != "" {
		opts.Interval = &interval
	}

	fields, err := h.store.ListFields(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if fields == nil {
		fields = []*model.Field{}
	}
	c.JSON(http.StatusOK, fields)
}

type updateFieldRequest struct {
	Name     *string `json:"name"`
	Unit     *string `json:"unit"`
	Interval *string `json:"interval"`
}

// UpdateField patches a field.
// PATCH /api/fields/:id
func (h *Handler) UpdateField(c *gin.Context) {
	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Interval != nil && !model.ValidInterval(*req.Interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entry interval"})
		return
	}

	field, err := h.store.UpdateField(c.Param("id"), req.Name, req.Unit, req.Interval)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, field)
}

// DeleteField deletes a field along with its entries.
// DELETE /api/fields/:id
func (h *Handler) DeleteField(c *gin.Context) {
	if err := h.store.DeleteField(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
