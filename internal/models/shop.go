package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop holds the stored credential for one installed store. This is the
// record the webhook path resolves before a sync can run.
type Shop struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	ShopDomain  string    `json:"shop_domain" gorm:"uniqueIndex;not null"`
	AccessToken string    `json:"-" gorm:"not null"`
	Scope       string    `json:"scope"`
	InstalledAt time.Time `json:"installed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
