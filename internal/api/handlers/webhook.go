package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopsync/internal/events"
	"shopsync/internal/logger"
	"shopsync/internal/models"
	"shopsync/internal/services/shopify"
	"shopsync/internal/sync"
)

// WebhookHandler reacts to product change events. Every event, including a
// single-product update, re-runs the whole full-sync pipeline for the
// owning shop; that redundancy is what keeps the stored set converged.
type WebhookHandler struct {
	db           *gorm.DB
	logger       *logger.Logger
	orchestrator *sync.Orchestrator
	publisher    *events.Publisher // nil when Kafka is not configured
}

func NewWebhookHandler(db *gorm.DB, logger *logger.Logger, orchestrator *sync.Orchestrator, publisher *events.Publisher) *WebhookHandler {
	return &WebhookHandler{
		db:           db,
		logger:       logger,
		orchestrator: orchestrator,
		publisher:    publisher,
	}
}

// HandleProduct serves /webhooks/products/{create,update,delete}. The
// response always completes with 200 once the headers parse; sync failures
// are recorded in the status channel, not surfaced to the platform.
func (h *WebhookHandler) HandleProduct(c *gin.Context) {
	topic := c.GetHeader("X-Shopify-Topic")
	shopDomain := c.GetHeader("X-Shopify-Shop-Domain")

	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing X-Shopify-Shop-Domain header"})
		return
	}

	if payload, err := c.GetRawData(); err == nil && len(payload) > 0 {
		var product shopify.WebhookPayload
		if json.Unmarshal(payload, &product) == nil {
			h.logger.Debug("Webhook %s for shop %s (product %d)", topic, shopDomain, product.ID)
		}
	}

	var shop models.Shop
	err := h.db.First(&shop, "shop_domain = ?", shopDomain).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Warn("Dropping webhook for shop %s: no stored credential", shopDomain)
		c.JSON(http.StatusOK, gin.H{"message": "No credential for shop, event dropped"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve credential for shop %s: %v", shopDomain, err)
		c.JSON(http.StatusOK, gin.H{"message": "Credential lookup failed, event dropped"})
		return
	}

	if h.publisher != nil {
		err := h.publisher.PublishSyncRequested(shop.ShopDomain, topic)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Sync queued"})
			return
		}
		h.logger.Error("Failed to queue sync for shop %s, running inline: %v", shop.ShopDomain, err)
	}

	result, err := h.orchestrator.Run(shop.ShopDomain, shop.AccessToken)
	if err != nil {
		h.logger.Error("Webhook-triggered sync for shop %s failed: %v", shop.ShopDomain, err)
		c.JSON(http.StatusOK, gin.H{"message": "Sync failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sync completed",
		"result":  result,
	})
}
