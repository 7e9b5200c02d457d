package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shopsync/internal/api/handlers"
	"shopsync/internal/api/middleware"
	"shopsync/internal/config"
	"shopsync/internal/database"
	"shopsync/internal/events"
	"shopsync/internal/logger"
	"shopsync/internal/sync"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, orchestrator *sync.Orchestrator, tracker *sync.Tracker, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	productHandler := handlers.NewProductHandler(db.DB, logger)
	syncHandler := handlers.NewSyncHandler(db.DB, logger, orchestrator, tracker)
	shopifyHandler := handlers.NewShopifyHandler(db.DB, logger, cfg, orchestrator)
	webhookHandler := handlers.NewWebhookHandler(db.DB, logger, orchestrator, publisher)

	// Webhooks: every product event re-syncs the owning shop
	webhooks := router.Group("/webhooks/products")
	{
		webhooks.POST("/create", webhookHandler.HandleProduct)
		webhooks.POST("/update", webhookHandler.HandleProduct)
		webhooks.POST("/delete", webhookHandler.HandleProduct)
	}

	// OAuth install flow; the callback kicks off the first full sync
	router.POST("/shopify/install", shopifyHandler.Install)
	router.GET("/shopify/callback", shopifyHandler.Callback)

	// Passthrough product endpoints
	router.GET("/api/products/count", productHandler.Count)
	router.POST("/api/products", productHandler.Create)

	v1 := router.Group("/api/v1")
	{
		shops := v1.Group("/shops/:shop")
		{
			shops.POST("/sync", syncHandler.Trigger)
			shops.GET("/syncs", syncHandler.ListByShop)
			shops.GET("/products", productHandler.List)
			shops.GET("/products/:id", productHandler.Get)
		}

		v1.GET("/syncs/:id", syncHandler.Get)
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
