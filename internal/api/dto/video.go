package dto

import "time"

// VideoSummaryDTO 列表项
type VideoSummaryDTO struct {
	ID            string    `json:"id"`
	Title         *string   `json:"title"`
	URL           *string   `json:"url"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	ChannelTitle  *string   `json:"channel_title"`
	PublishedAt   time.Time `json:"published_at"`
	DurationSec   *int      `json:"duration_sec"`
	Views         *int64    `json:"views"`
	Likes         *int64    `json:"likes"`
	SupportTotal  int64     `json:"support_total"`
	IsShort       bool      `json:"is_short"`
	Rank          int       `json:"rank,omitempty"`
	SupportPoints *int64    `json:"support_points,omitempty"`
	TrendingScore *float64  `json:"trending_score,omitempty"`
}

// VideoDetailDTO 详情
type VideoDetailDTO struct {
	VideoSummaryDTO
	Description *string `json:"description"`
}

// WindowDTO 实际生效的时间窗口，since 为空表示不限
type WindowDTO struct {
	Range string     `json:"range"`
	Since *time.Time `json:"since"`
}

// VideoListDTO 列表返回包装
type VideoListDTO struct {
	Items    []*VideoSummaryDTO `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int                `json:"total"`
	Window   *WindowDTO         `json:"window,omitempty"`
}

// SupportResultDTO 应援结果
type SupportResultDTO struct {
	VideoID      string `json:"video_id"`
	Points       int64  `json:"points"`
	SupportTotal int64  `json:"support_total"`
}
