package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDocument is the stored form of one catalog product. The natural
// key is (shop_name, product_id); ID exists only so gorm has a stable
// primary key across replaces.
type ProductDocument struct {
	ID            string          `json:"id" gorm:"type:uuid;primaryKey"`
	ShopName      string          `json:"shop_name" gorm:"uniqueIndex:idx_shop_product;not null"`
	ProductID     string          `json:"product_id" gorm:"uniqueIndex:idx_shop_product;not null"`
	Title         string          `json:"title"`
	Handle        string          `json:"handle"`
	FeaturedImage *ImageRef       `json:"featured_image,omitempty" gorm:"serializer:json"`
	Images        []ImageRef      `json:"images" gorm:"serializer:json"`
	Variants      []VariantRecord `json:"variants" gorm:"serializer:json"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ImageRef is copied verbatim from the catalog API.
type ImageRef struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type VariantRecord struct {
	VariantID string    `json:"variant_id"`
	Title     string    `json:"title"`
	Price     string    `json:"price"`
	SKU       string    `json:"sku"`
	Image     *ImageRef `json:"image,omitempty"`
}

func (p *ProductDocument) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
