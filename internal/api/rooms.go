package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

type createRoomRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// CreateRoom creates a room.
// POST /api/rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room name is required"})
		return
	}

	room := &model.Room{
		ID:       uuid.NewString(),
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if err := h.store.CreateRoom(room); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.GetRoom(room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListRooms lists all rooms flat.
// GET /api/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rooms == nil {
		rooms = []*model.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomTree returns the nested hierarchy.
// GET /api/rooms/tree
func (h *Handler) GetRoomTree(c *gin.Context) {
	tree, err := h.store.RoomTree()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tree == nil {
		tree = []*model.RoomNode{}
	}
	c.JSON(http.StatusOK, tree)
}

type updateRoomRequest struct {
	Name        *string `json:"name"`
	ParentID    *string `json:"parentId"`
	ClearParent bool    `json:"clearParent"`
}

// UpdateRoom renames or reparents a room.
// PATCH /api/rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	room, err := h.store.UpdateRoom(c.Param("id"), req.Name, req.ParentID, req.ClearParent)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, store.ErrRoomCycle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "room cannot be moved under its own descendant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom deletes an empty room.
// DELETE /api/rooms/:id
func (h *Handler) DeleteRoom(c *gin.Context) {
	err := h.store.DeleteRoom(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, store.ErrRoomInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "room still has children or fields"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
