package sync

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopsync/internal/models"
)

// Tracker owns the sync-status side channel. One row per run, mutated in
// place, never deleted.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// Begin creates the status row for a new run and returns its id.
func (t *Tracker) Begin(shopName string) (string, error) {
	status := models.SyncStatus{
		SyncID:    uuid.New().String(),
		ShopName:  shopName,
		Status:    models.SyncStarted,
		Progress:  0,
		Message:   "sync started",
		StartedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := t.db.Create(&status).Error; err != nil {
		return "", &StorageError{Op: "status create", Shop: shopName, Err: err}
	}
	return status.SyncID, nil
}

// Update mutates the run's status row. Failures here are logged by the
// caller but never abort a sync; the status record is best-effort.
func (t *Tracker) Update(syncID string, state models.SyncState, progress int, message string) error {
	err := t.db.Model(&models.SyncStatus{}).Where("sync_id = ?", syncID).Updates(map[string]interface{}{
		"status":     state,
		"progress":   progress,
		"message":    message,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return &StorageError{Op: "status update", Err: err}
	}
	return nil
}

func (t *Tracker) Get(syncID string) (*models.SyncStatus, error) {
	var status models.SyncStatus
	if err := t.db.First(&status, "sync_id = ?", syncID).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// ListByShop returns a shop's runs, most recent first.
func (t *Tracker) ListByShop(shopName string, limit int) ([]models.SyncStatus, error) {
	var statuses []models.SyncStatus
	query := t.db.Where("shop_name = ?", shopName).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&statuses).Error; err != nil {
		return nil, &StorageError{Op: "status list", Shop: shopName, Err: err}
	}
	return statuses, nil
}
