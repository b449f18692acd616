package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedProduct is an ASIN the operator follows across sweeps.
type TrackedProduct struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ASIN        string `gorm:"type:varchar(10);not null;uniqueIndex:idx_tracked_asin_marketplace" json:"asin"`
	Marketplace string `gorm:"type:varchar(30);not null;uniqueIndex:idx_tracked_asin_marketplace;default:'amazon.com'" json:"marketplace"`

	Title string `gorm:"type:text" json:"title"`
	Notes string `gorm:"type:text" json:"notes"`

	TargetPrice  *decimal.Decimal `gorm:"type:numeric(20,2)" json:"target_price,omitempty"`
	AlertEnabled bool             `gorm:"default:false;index" json:"alert_enabled"`

	LastCheckedAt *time.Time `gorm:"type:timestamptz" json:"last_checked_at,omitempty"`
	CreatedAt     time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (TrackedProduct) TableName() string {
	return "tracked_products"
}
