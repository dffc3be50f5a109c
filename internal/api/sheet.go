package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiroom/internal/model"
	"kpiroom/internal/sheet"
)

// GetSheetData returns the month grid payload.
// GET /api/sheet-data?month=2024-01&room_id=
func (h *Handler) GetSheetData(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month, _ = h.store.GetCurrentMonth()
	}
	if month == "" {
		month = time.Now().Format(model.MonthLayout)
	}
	if _, err := time.Parse(model.MonthLayout, month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	data, err := sheet.NewBuilder(h.store).Build(month, c.Query("room_id"))
	if err != nil {
		h.log.Error("build sheet failed", zap.String("month", month), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

type submitEntriesRequest struct {
	Date    string                  `json:"date"`
	Entries []model.FieldEntryInput `json:"entries"`
}

// SubmitFieldEntries writes one date's field values and reports how
// many KPI definitions that touched.
// POST /api/field-entries
func (h *Handler) SubmitFieldEntries(c *gin.Context) {
	var req submitEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no entries to submit"})
		return
	}

	created, err := h.store.UpsertEntries(req.Date, req.Entries)
	if err != nil {
		h.log.Error("submit entries failed", zap.String("date", req.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fieldIDs := make([]string, len(req.Entries))
	for i, e := range req.Entries {
		fieldIDs[i] = e.DataFieldID
	}
	recalculated, err := h.store.TouchKPIsForFields(fieldIDs)
	if err != nil {
		h.log.Error("touch kpis failed", zap.String("date", req.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SubmitResult{
		EntriesCreated:   created,
		KPIsRecalculated: recalculated,
	})
}

// ListMonths lists months that already have entries.
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	months, err := h.store.MonthsWithEntries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	current, _ := h.store.GetCurrentMonth()
	c.JSON(http.StatusOK, gin.H{
		"currentMonth": current,
		"items":        months,
	})
}
