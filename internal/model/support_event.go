package model

import (
	"time"
)

// SupportEvent 应援记录，只追加不修改
type SupportEvent struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;index:idx_video_id" json:"video_id"`
	Amount    *int      `json:"amount"`
	CreatedAt time.Time `gorm:"not null;index:idx_created_at" json:"created_at"`
}

func (SupportEvent) TableName() string {
	return "support_events"
}

// Points 未指定数量时记 1 点
func (e *SupportEvent) Points() int64 {
	if e.Amount == nil {
		return 1
	}
	return int64(*e.Amount)
}
