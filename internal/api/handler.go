package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiroom/internal/store"
)

// Handler API handlers over the store
type Handler struct {
	store     *store.Store
	log       *zap.Logger
	exportDir string
	downloads *exportDownloadStore
}

// NewHandler creates the API handler set.
func NewHandler(st *store.Store, log *zap.Logger, exportDir string) *Handler {
	return &Handler{
		store:     st,
		log:       log,
		exportDir: exportDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes mounts the API under router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status and org config
	router.GET("/status", h.GetStatus)
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// data-entry sheet
	router.GET("/sheet-data", h.GetSheetData)
	router.POST("/field-entries", h.SubmitFieldEntries)
	router.GET("/months", h.ListMonths)

	// rooms
	router.GET("/rooms", h.ListRooms)
	router.GET("/rooms/tree", h.GetRoomTree)
	router.POST("/rooms", h.CreateRoom)
	router.PATCH("/rooms/:id", h.UpdateRoom)
	router.DELETE("/rooms/:id", h.DeleteRoom)

	// fields
	router.GET("/fields", h.ListFields)
	router.POST("/fields", h.CreateField)
	router.PATCH("/fields/:id", h.UpdateField)
	router.DELETE("/fields/:id", h.DeleteField)

	// kpi definitions
	router.GET("/kpis", h.ListKPIs)
	router.POST("/kpis", h.CreateKPI)
	router.PATCH("/kpis/:id", h.UpdateKPI)
	router.DELETE("/kpis/:id", h.DeleteKPI)

	// integration connections
	router.GET("/integrations/providers", h.ListProviders)
	router.GET("/integrations", h.ListIntegrations)
	router.POST("/integrations", h.CreateIntegration)
	router.PATCH("/integrations/:id", h.UpdateIntegrationStatus)
	router.DELETE("/integrations/:id", h.DeleteIntegration)

	// workbook import/export
	router.POST("/import", h.Import)
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// RegisterChartRoutes mounts the rendered chart pages outside /api.
func (h *Handler) RegisterChartRoutes(router *gin.Engine) {
	router.GET("/charts/field/:id", h.FieldChart)
	router.GET("/charts/fill", h.FillChart)
}
