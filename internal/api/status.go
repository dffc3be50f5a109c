package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kpiroom/internal/model"
)

// StatusResponse system status payload
type StatusResponse struct {
	Initialized  bool    `json:"initialized"`  // any fields defined yet
	CurrentMonth string  `json:"currentMonth"` // active entry month
	RoomCount    int     `json:"roomCount"`
	FieldCount   int     `json:"fieldCount"`
	EntryCount   int     `json:"entryCount"` // entries in the current month
	FillRate     float64 `json:"fillRate"`   // filled share of the month grid, 0..1
}

// GetStatus reports the admin console's headline numbers.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	month, _ := h.store.GetCurrentMonth()
	if month == "" {
		month = time.Now().Format(model.MonthLayout)
	}

	fieldCount, err := h.store.CountFields()
	if err != nil {
		fieldCount = 0
	}

	rooms, err := h.store.ListRooms()
	roomCount := 0
	if err == nil {
		roomCount = len(rooms)
	}

	entryCount, err := h.store.CountEntries(month)
	if err != nil {
		entryCount = 0
	}

	fillRate := 0.0
	if first, err := time.Parse(model.MonthLayout, month); err == nil && fieldCount > 0 {
		days := first.AddDate(0, 1, -1).Day()
		fillRate = float64(entryCount) / float64(days*fieldCount)
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  fieldCount > 0,
		CurrentMonth: month,
		RoomCount:    roomCount,
		FieldCount:   fieldCount,
		EntryCount:   entryCount,
		FillRate:     fillRate,
	})
}
