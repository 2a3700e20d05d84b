package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PlatformYouTube = "youtube"

type Video struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Platform        string    `gorm:"type:varchar(32);not null;uniqueIndex:uk_platform_video" json:"platform"`
	PlatformVideoID string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_platform_video" json:"platform_video_id"`
	Title           *string   `gorm:"type:varchar(255)" json:"title"`
	ChannelTitle    *string   `gorm:"type:varchar(255)" json:"channel_title"`
	URL             *string   `gorm:"type:varchar(512)" json:"url"`
	ThumbnailURL    *string   `gorm:"type:varchar(512)" json:"thumbnail_url"`
	Description     *string   `gorm:"type:text" json:"description"`
	DurationSec     *int      `json:"duration_sec"`
	PublishedAt     time.Time `gorm:"not null;index:idx_published_at" json:"published_at"`
	Views           *int64    `gorm:"default:0" json:"views"`
	Likes           *int64    `gorm:"default:0" json:"likes"`
	SupportTotal    int64     `gorm:"not null;default:0" json:"support_total"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// ViewCount 空值按 0 处理
func (v *Video) ViewCount() int64 {
	if v.Views == nil {
		return 0
	}
	return *v.Views
}

// LikeCount 空值按 0 处理
func (v *Video) LikeCount() int64 {
	if v.Likes == nil {
		return 0
	}
	return *v.Likes
}
