package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatMessage is one turn of an assistant session.
type ChatMessage struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string `gorm:"type:varchar(100);not null;index" json:"session_id"`
	Role      string `gorm:"type:varchar(20);not null" json:"role"`
	Content   string `gorm:"type:text;not null" json:"content"`

	Context datatypes.JSON `gorm:"type:jsonb" json:"context,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
