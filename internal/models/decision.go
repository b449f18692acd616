package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Decision is a persisted advisor strategy, the durable counterpart of the
// advisor's in-memory log. Factors and alternatives are stored as JSONB so
// the dashboard can render the breakdown without re-running the advisor.
type Decision struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ASIN string `gorm:"type:varchar(10);index" json:"asin"`

	Action       string          `gorm:"type:varchar(20);not null;index" json:"action"`
	TargetPrice  decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"target_price"`
	CurrentPrice decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"current_price"`
	PriceDelta   decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price_delta"`

	Confidence int    `gorm:"not null" json:"confidence"`
	Risk       string `gorm:"type:varchar(10);not null" json:"risk"`
	Reasoning  string `gorm:"type:text" json:"reasoning"`

	ExpectedCaptureTime string `gorm:"type:varchar(30)" json:"expected_capture_time"`
	IsFBA               bool   `gorm:"default:false" json:"is_fba"`

	Factors      datatypes.JSON `gorm:"type:jsonb" json:"factors,omitempty"`
	Alternatives datatypes.JSON `gorm:"type:jsonb" json:"alternatives,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (Decision) TableName() string {
	return "decisions"
}
