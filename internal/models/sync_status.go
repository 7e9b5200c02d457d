package models

import (
	"time"
)

// SyncStatus is the audit record for one sync run. Rows are created when a
// run starts, updated in place as pages are processed, and never deleted.
type SyncStatus struct {
	SyncID    string    `json:"sync_id" gorm:"type:uuid;primaryKey"`
	ShopName  string    `json:"shop_name" gorm:"index;not null"`
	Status    SyncState `json:"status" gorm:"not null"`
	Progress  int       `json:"progress"`
	Message   string    `json:"message"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SyncState string

const (
	SyncStarted    SyncState = "started"
	SyncInProgress SyncState = "in_progress"
	SyncCompleted  SyncState = "completed"
	SyncFailed     SyncState = "failed"
	SyncError      SyncState = "error"
)

// Terminal reports whether the state is absorbing.
func (s SyncState) Terminal() bool {
	switch s {
	case SyncCompleted, SyncFailed, SyncError:
		return true
	}
	return false
}
