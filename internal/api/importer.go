package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiroom/internal/importer"
)

// Import ingests a bulk-entry workbook: first column field names,
// header row entry dates. Row errors are collected, not fatal.
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("kpiroom_import_%d_%s", time.Now().Unix(), file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}
	defer os.Remove(tempPath)

	result, err := importer.ImportFile(h.store, tempPath)
	if err != nil {
		h.log.Error("import failed", zap.String("file", file.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
