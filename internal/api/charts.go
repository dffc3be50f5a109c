package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kpiroom/internal/charts"
	"kpiroom/internal/model"
	"kpiroom/internal/sheet"
	"kpiroom/internal/store"
)

func (h *Handler) chartMonth(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month == "" {
		month, _ = h.store.GetCurrentMonth()
	}
	if month == "" {
		month = time.Now().Format(model.MonthLayout)
	}
	if _, err := time.Parse(model.MonthLayout, month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return "", false
	}
	return month, true
}

// FieldChart renders one field's daily + cumulative trend page.
// GET /charts/field/:id?month=
func (h *Handler) FieldChart(c *gin.Context) {
	month, ok := h.chartMonth(c)
	if !ok {
		return
	}

	field, err := h.store.GetField(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dates, err := sheet.MonthDates(month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	values, err := h.store.EntriesForMonth(month, []string{field.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	line := charts.FieldTrend(field.Name, month, dates, values[field.ID])
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
	}
}

// FillChart renders the per-room fill-rate page.
// GET /charts/fill?month=
func (h *Handler) FillChart(c *gin.Context) {
	month, ok := h.chartMonth(c)
	if !ok {
		return
	}

	data, err := sheet.NewBuilder(h.store).Build(month, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	days := len(data.Dates)
	names := make([]string, 0, len(data.RoomGroups))
	rates := make([]float64, 0, len(data.RoomGroups))
	for _, group := range data.RoomGroups {
		filled := 0
		for _, f := range group.Fields {
			filled += len(f.Values)
		}
		total := days * len(group.Fields)
		rate := 0.0
		if total > 0 {
			rate = float64(filled) / float64(total)
		}
		names = append(names, group.RoomName)
		rates = append(rates, rate)
	}

	bar := charts.RoomFill(month, names, rates)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
	}
}
