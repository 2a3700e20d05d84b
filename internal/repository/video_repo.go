package repository

import (
	"Spotlight/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoQuery 列表查询条件，Since 为零值时不限时间
type VideoQuery struct {
	Keyword string
	Since   time.Time
	Limit   int
}

type VideoRepo interface {
	Upsert(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Video, error)
	List(ctx context.Context, query *VideoQuery) ([]*model.Video, error)
	ListByPlatformSince(ctx context.Context, platform string, since time.Time) ([]*model.Video, error)
}

type videoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) VideoRepo {
	return &videoRepoImpl{db: db}
}

// Upsert 以 platform + platform_video_id 为唯一键，存在则刷新元数据与计数。
// published_at 只在首次写入时落库，之后以库中为准；写入后 video 会被回填为库中的行
func (r *videoRepoImpl) Upsert(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "platform"}, {Name: "platform_video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"channel_title",
				"url",
				"thumbnail_url",
				"description",
				"duration_sec",
				"views",
				"likes",
				"updated_at",
			}),
		}).Create(video).Error
		if err != nil {
			return err
		}

		// 冲突时 BeforeCreate 生成的 ID 并未落库，重新读出真实的行
		var stored model.Video
		err = tx.Where("platform = ? AND platform_video_id = ?", video.Platform, video.PlatformVideoID).
			First(&stored).Error
		if err != nil {
			return err
		}
		*video = stored
		return nil
	})
}

// GetByID 不存在时返回 nil, nil
func (r *videoRepoImpl) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepoImpl) GetByIDs(ctx context.Context, ids []string) ([]*model.Video, error) {
	videos := make([]*model.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// List 按发布时间倒序取候选集
func (r *videoRepoImpl) List(ctx context.Context, query *VideoQuery) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	tx := r.db.WithContext(ctx).Model(&model.Video{})
	if !query.Since.IsZero() {
		tx = tx.Where("published_at >= ?", query.Since)
	}
	if query.Keyword != "" {
		like := "%" + escapeLike(query.Keyword) + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	err := tx.Order("published_at DESC").Order("id ASC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListByPlatformSince 供统计刷新任务使用，只取 id 与链接
func (r *videoRepoImpl) ListByPlatformSince(ctx context.Context, platform string, since time.Time) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	err := r.db.WithContext(ctx).
		Select("id", "platform", "platform_video_id", "url", "published_at").
		Where("platform = ? AND published_at >= ?", platform, since).
		Order("published_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
