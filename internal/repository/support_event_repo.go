package repository

import (
	"Spotlight/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SupportEventRepo interface {
	Create(ctx context.Context, event *model.SupportEvent) error
	ListSince(ctx context.Context, since time.Time) ([]*model.SupportEvent, error)
}

type supportEventRepoImpl struct {
	db *gorm.DB
}

func NewSupportEventRepo(db *gorm.DB) SupportEventRepo {
	return &supportEventRepoImpl{db: db}
}

// Create 写入应援记录并累加视频的 support_total
func (r *supportEventRepoImpl) Create(ctx context.Context, event *model.SupportEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Model(&model.Video{}).
			Where("id = ?", event.VideoID).
			UpdateColumn("support_total", gorm.Expr("support_total + ?", event.Points())).Error
	})
}

// ListSince 窗口内的应援记录，按时间正序
func (r *supportEventRepoImpl) ListSince(ctx context.Context, since time.Time) ([]*model.SupportEvent, error) {
	events := make([]*model.SupportEvent, 0)
	err := r.db.WithContext(ctx).
		Select("id", "video_id", "amount", "created_at").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
