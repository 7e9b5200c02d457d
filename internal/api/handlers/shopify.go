package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shopsync/internal/config"
	"shopsync/internal/logger"
	"shopsync/internal/models"
	"shopsync/internal/services/shopify"
	"shopsync/internal/sync"
)

type ShopifyHandler struct {
	db           *gorm.DB
	logger       *logger.Logger
	config       *config.Config
	oauthService *shopify.OAuthService
	orchestrator *sync.Orchestrator
}

func NewShopifyHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config, orchestrator *sync.Orchestrator) *ShopifyHandler {
	return &ShopifyHandler{
		db:           db,
		logger:       logger,
		config:       cfg,
		oauthService: shopify.NewOAuthService(cfg, logger),
		orchestrator: orchestrator,
	}
}

// Install initiates the OAuth flow.
func (h *ShopifyHandler) Install(c *gin.Context) {
	var request struct {
		ShopDomain  string `json:"shop_domain" binding:"required"`
		RedirectURI string `json:"redirect_uri" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authURL, state, err := h.oauthService.GenerateAuthURL(request.ShopDomain, request.RedirectURI)
	if err != nil {
		h.logger.Error("Failed to generate auth URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authorization URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"auth_url": authURL,
		"state":    state,
		"message":  "Redirect user to the auth_url to complete OAuth flow",
	})
}

// Callback handles the OAuth callback: persist the credential, then run the
// first full sync for the shop. The response reports the sync outcome but
// the install itself succeeds either way.
func (h *ShopifyHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	shopDomain := c.Query("shop")

	if code == "" || state == "" || shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	tokenResp, err := h.oauthService.ExchangeCodeForToken(shopDomain, code)
	if err != nil {
		h.logger.Error("Failed to exchange code for token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	shop, err := h.saveCredential(shopDomain, tokenResp)
	if err != nil {
		h.logger.Error("Failed to save shop credential: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shop credential"})
		return
	}

	result, syncErr := h.orchestrator.Run(shop.ShopDomain, shop.AccessToken)
	if syncErr != nil {
		h.logger.Error("Initial sync for shop %s failed: %v", shop.ShopDomain, syncErr)
		c.JSON(http.StatusOK, gin.H{
			"message":     "Shop connected, initial sync failed",
			"shop_domain": shop.ShopDomain,
			"error":       syncErr.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Shop connected and synced",
		"shop_domain": shop.ShopDomain,
		"result":      result,
	})
}

func (h *ShopifyHandler) saveCredential(shopDomain string, tokenResp *shopify.TokenResponse) (*models.Shop, error) {
	var shop models.Shop
	err := h.db.First(&shop, "shop_domain = ?", shopDomain).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		shop = models.Shop{
			ShopDomain:  shopDomain,
			AccessToken: tokenResp.AccessToken,
			Scope:       tokenResp.Scope,
			InstalledAt: time.Now(),
		}
		if err := h.db.Create(&shop).Error; err != nil {
			return nil, err
		}
	case err == nil:
		shop.AccessToken = tokenResp.AccessToken
		shop.Scope = tokenResp.Scope
		if err := h.db.Save(&shop).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &shop, nil
}
