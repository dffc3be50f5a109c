package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiroom/internal/api"
	"kpiroom/internal/config"
	"kpiroom/internal/store"
)

// Server HTTP server
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
	log    *zap.Logger
}

// NewServer wires the store and API handlers onto a gin engine.
func NewServer(cfg *config.AppConfig, log *zap.Logger) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dataDir, "kpiroom.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		return nil, err
	}

	exportDir := filepath.Join(dataDir, "exports")
	handler := api.NewHandler(sqliteStore, log, exportDir)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    handler,
		log:    log,
	}

	s.setupRoutes(devMode)
	return s, nil
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
	s.api.RegisterChartRoutes(s.router)

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "kpiroom",
			"api":     "/api",
			"charts":  []string{"/charts/field/:id", "/charts/fill"},
		})
	})

	if devMode {
		// dev mode: hand unknown routes to the frontend dev server
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
