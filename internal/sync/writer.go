package sync

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"shopsync/internal/logger"
	"shopsync/internal/models"
)

// Writer persists product documents, keyed by (shop_name, product_id).
type Writer struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewWriter(db *gorm.DB, logger *logger.Logger) *Writer {
	return &Writer{
		db:     db,
		logger: logger,
	}
}

// UpsertPage inserts or replaces each document. A document whose natural key
// already exists counts as updated, including when its content is unchanged;
// calling twice with the same page is safe.
func (w *Writer) UpsertPage(shopName string, docs []models.ProductDocument) (inserted int, updated int, err error) {
	for i := range docs {
		doc := docs[i]
		doc.ShopName = shopName
		doc.UpdatedAt = time.Now()

		var existing models.ProductDocument
		findErr := w.db.Where("shop_name = ? AND product_id = ?", shopName, doc.ProductID).First(&existing).Error

		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if createErr := w.db.Create(&doc).Error; createErr != nil {
				return inserted, updated, &StorageError{Op: "upsert", Shop: shopName, Err: createErr}
			}
			inserted++
		case findErr == nil:
			doc.ID = existing.ID
			doc.CreatedAt = existing.CreatedAt
			if saveErr := w.db.Save(&doc).Error; saveErr != nil {
				return inserted, updated, &StorageError{Op: "upsert", Shop: shopName, Err: saveErr}
			}
			updated++
		default:
			return inserted, updated, &StorageError{Op: "upsert", Shop: shopName, Err: findErr}
		}
	}

	return inserted, updated, nil
}

// PruneMissing deletes every stored document for the shop whose product id
// was not seen during the current full sync. An empty seen set means the
// catalog reported no products, so everything for the shop goes.
func (w *Writer) PruneMissing(shopName string, seenProductIDs []string) (int64, error) {
	query := w.db.Where("shop_name = ?", shopName)
	if len(seenProductIDs) > 0 {
		query = query.Where("product_id NOT IN ?", seenProductIDs)
	}

	result := query.Delete(&models.ProductDocument{})
	if result.Error != nil {
		return 0, &StorageError{Op: "prune", Shop: shopName, Err: result.Error}
	}

	if result.RowsAffected > 0 {
		w.logger.Info("Pruned %d stale products for shop %s", result.RowsAffected, shopName)
	}
	return result.RowsAffected, nil
}
