package models

import (
	"time"

	"gorm.io/datatypes"
)

// SearchRecord is one upstream lookup made through the proxy endpoints,
// kept for the dashboard's history panel.
type SearchRecord struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SearchType string `gorm:"type:varchar(30);not null;index" json:"search_type"`
	Query      string `gorm:"type:text;not null" json:"query"`

	Params          datatypes.JSON `gorm:"type:jsonb" json:"params,omitempty"`
	ResponseSummary string         `gorm:"type:text" json:"response_summary"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (SearchRecord) TableName() string {
	return "search_records"
}
