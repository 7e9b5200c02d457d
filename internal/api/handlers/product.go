package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopsync/internal/logger"
	"shopsync/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewProductHandler(db *gorm.DB, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		db:     db,
		logger: logger,
	}
}

// Count reports stored document counts, optionally scoped to one shop.
func (h *ProductHandler) Count(c *gin.Context) {
	query := h.db.Model(&models.ProductDocument{})
	if shop := c.Query("shop"); shop != "" {
		query = query.Where("shop_name = ?", shop)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// List pages through a shop's stored documents.
func (h *ProductHandler) List(c *gin.Context) {
	shopDomain := c.Param("shop")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := h.db.Model(&models.ProductDocument{}).Where("shop_name = ?", shopDomain)

	var total int64
	query.Count(&total)

	var products []models.ProductDocument
	if err := query.Order("product_id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// Get returns a single stored document by shop and product id.
func (h *ProductHandler) Get(c *gin.Context) {
	shopDomain := c.Param("shop")
	productID := c.Param("id")

	var product models.ProductDocument
	err := h.db.First(&product, "shop_name = ? AND product_id = ?", shopDomain, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Create stores a document directly, bypassing the sync pipeline.
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.ProductDocument
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if product.ShopName == "" || product.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shop_name and product_id are required"})
		return
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}
