package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiroom/internal/exporter"
	"kpiroom/internal/model"
	"kpiroom/internal/sheet"
)

const downloadTTL = 10 * time.Minute

type exportRequest struct {
	Month  string `json:"month"`
	RoomID string `json:"roomId"`
}

// Export builds the month workbook and returns a one-time download token.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Month == "" {
		req.Month, _ = h.store.GetCurrentMonth()
	}
	if _, err := time.Parse(model.MonthLayout, req.Month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return
	}

	data, err := sheet.NewBuilder(h.store).Build(req.Month, req.RoomID)
	if err != nil {
		h.log.Error("export build sheet failed", zap.String("month", req.Month), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("kpi-sheet-%s.xlsx", req.Month)
	outPath := filepath.Join(h.exportDir, filename)
	if err := exporter.WriteWorkbook(data, outPath); err != nil {
		h.log.Error("export write failed", zap.String("path", outPath), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(outPath, req.Month, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
	})
}

// DownloadExport streams a previously generated workbook. Tokens are
// single use.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or not found"})
		return
	}
	h.downloads.delete(token)

	c.FileAttachment(item.filePath, filepath.Base(item.filePath))
}
