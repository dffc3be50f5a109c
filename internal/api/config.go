package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

// ConfigResponse org-level settings
type ConfigResponse struct {
	OrgName      string `json:"orgName"`
	CurrentMonth string `json:"currentMonth"`
	WeekStart    string `json:"weekStart"`
}

// GetConfig returns org settings with defaults filled in.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	all, err := h.store.GetAllConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := ConfigResponse{
		OrgName:      all[store.ConfigOrgName],
		CurrentMonth: all[store.ConfigCurrentMonth],
		WeekStart:    all[store.ConfigWeekStart],
	}
	if resp.CurrentMonth == "" {
		resp.CurrentMonth = time.Now().Format(model.MonthLayout)
	}
	if resp.WeekStart == "" {
		resp.WeekStart = "monday"
	}
	c.JSON(http.StatusOK, resp)
}

type updateConfigRequest struct {
	OrgName      *string `json:"orgName"`
	CurrentMonth *string `json:"currentMonth"`
	WeekStart    *string `json:"weekStart"`
}

// UpdateConfig patches org settings.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.CurrentMonth != nil {
		if _, err := time.Parse(model.MonthLayout, *req.CurrentMonth); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
			return
		}
		if err := h.store.SetCurrentMonth(*req.CurrentMonth); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.OrgName != nil {
		if err := h.store.SetConfig(store.ConfigOrgName, *req.OrgName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.WeekStart != nil {
		if *req.WeekStart != "monday" && *req.WeekStart != "sunday" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be monday or sunday"})
			return
		}
		if err := h.store.SetConfig(store.ConfigWeekStart, *req.WeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	h.GetConfig(c)
}
