package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one observed price for a tracked ASIN.
type PricePoint struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ASIN        string `gorm:"type:varchar(10);not null;index" json:"asin"`
	Marketplace string `gorm:"type:varchar(30);not null" json:"marketplace"`

	Price          decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price"`
	BuyboxSeller   string          `gorm:"type:varchar(200)" json:"buybox_seller"`
	BuyboxPrice    decimal.Decimal `gorm:"type:numeric(20,2)" json:"buybox_price"`
	IsBuyboxWinner bool            `gorm:"default:false" json:"is_buybox_winner"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (PricePoint) TableName() string {
	return "price_points"
}
