package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopsync/internal/logger"
	"shopsync/internal/models"
	"shopsync/internal/services/shopify"
	"shopsync/internal/sync"
)

type SyncHandler struct {
	db           *gorm.DB
	logger       *logger.Logger
	orchestrator *sync.Orchestrator
	tracker      *sync.Tracker
}

func NewSyncHandler(db *gorm.DB, logger *logger.Logger, orchestrator *sync.Orchestrator, tracker *sync.Tracker) *SyncHandler {
	return &SyncHandler{
		db:           db,
		logger:       logger,
		orchestrator: orchestrator,
		tracker:      tracker,
	}
}

// Trigger runs a full sync for a shop on demand.
func (h *SyncHandler) Trigger(c *gin.Context) {
	shopDomain := c.Param("shop")

	var shop models.Shop
	if err := h.db.First(&shop, "shop_domain = ?", shopDomain).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shop"})
		return
	}

	result, err := h.orchestrator.Run(shop.ShopDomain, shop.AccessToken)
	if err != nil {
		h.logger.Error("Manual sync for shop %s failed: %v", shop.ShopDomain, err)

		var authErr *shopify.AuthError
		var upstreamErr *shopify.UpstreamError
		switch {
		case errors.As(err, &authErr):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Get returns one sync-status record by id.
func (h *SyncHandler) Get(c *gin.Context) {
	id := c.Param("id")

	status, err := h.tracker.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sync not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": status})
}

// ListByShop returns a shop's sync history, most recent first.
func (h *SyncHandler) ListByShop(c *gin.Context) {
	shopDomain := c.Param("shop")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	statuses, err := h.tracker.ListByShop(shopDomain, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": statuses})
}
