package service

import (
	"Spotlight/internal/model"
	"Spotlight/internal/pkg/youtube"
	"Spotlight/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"
)

// VideoFetcher 平台元数据来源
type VideoFetcher interface {
	ListVideos(ctx context.Context, ids []string) ([]*youtube.Video, error)
}

type IngestService interface {
	// Import 解析链接或 id 并写入视频库，返回写入条数
	Import(ctx context.Context, refs []string) (int, error)
	// RefreshRecent 刷新最近 days 天内发布的视频计数
	RefreshRecent(ctx context.Context, days int) (int, error)
}

type ingestServiceImpl struct {
	videoRepo repository.VideoRepo
	fetcher   VideoFetcher
	now       func() time.Time
}

func NewIngestService(videoRepo repository.VideoRepo, fetcher VideoFetcher) IngestService {
	return &ingestServiceImpl{videoRepo: videoRepo, fetcher: fetcher, now: time.Now}
}

func (s *ingestServiceImpl) Import(ctx context.Context, refs []string) (int, error) {
	shorts := make(map[string]bool, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, ok := youtube.ExtractVideoID(ref)
		if !ok {
			log.WarnContext(ctx, "skip unrecognized video ref", "ref", ref)
			continue
		}
		if _, dup := shorts[id]; !dup {
			ids = append(ids, id)
		}
		shorts[id] = shorts[id] || strings.Contains(ref, "/shorts/")
	}
	if len(ids) == 0 {
		return 0, ErrParamInvalid
	}
	return s.sync(ctx, ids, shorts)
}

func (s *ingestServiceImpl) RefreshRecent(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, ErrParamInvalid
	}
	since := s.now().AddDate(0, 0, -days)
	videos, err := s.videoRepo.ListByPlatformSince(ctx, model.PlatformYouTube, since)
	if err != nil {
		return 0, upstream(err)
	}
	if len(videos) == 0 {
		return 0, nil
	}

	shorts := make(map[string]bool, len(videos))
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.PlatformVideoID)
		shorts[v.PlatformVideoID] = v.URL != nil && strings.Contains(*v.URL, "/shorts/")
	}
	return s.sync(ctx, ids, shorts)
}

func (s *ingestServiceImpl) sync(ctx context.Context, ids []string, shorts map[string]bool) (int, error) {
	items, err := s.fetcher.ListVideos(ctx, ids)
	if err != nil {
		return 0, upstream(err)
	}

	now := s.now()
	count := 0
	for _, item := range items {
		video := NormalizeYouTubeVideo(item, shorts[item.ID], now)
		if err := s.videoRepo.Upsert(ctx, video); err != nil {
			return count, upstream(err)
		}
		count++
	}
	if missing := len(ids) - len(items); missing > 0 {
		log.InfoContext(ctx, "some videos not returned by platform", "requested", len(ids), "missing", missing)
	}
	return count, nil
}

// NormalizeYouTubeVideo 平台原始数据转为视频记录。时长为 0（直播等）视为未知，发布时间缺失时用 now
func NormalizeYouTubeVideo(src *youtube.Video, short bool, now time.Time) *model.Video {
	publishedAt, err := time.Parse(time.RFC3339, src.Snippet.PublishedAt)
	if err != nil {
		publishedAt = now
	}

	video := &model.Video{
		Platform:        model.PlatformYouTube,
		PlatformVideoID: src.ID,
		Title:           optional(src.Snippet.Title),
		ChannelTitle:    optional(src.Snippet.ChannelTitle),
		Description:     optional(src.Snippet.Description),
		URL:             optional(youtube.WatchURL(src.ID, short)),
		ThumbnailURL:    optional(youtube.BestThumbnail(src.Snippet.Thumbnails)),
		PublishedAt:     publishedAt.UTC(),
		Views:           parseCount(src.Statistics.ViewCount),
		Likes:           parseCount(src.Statistics.LikeCount),
	}
	if sec, ok := youtube.ParseDuration(src.ContentDetails.Duration); ok && sec > 0 {
		video.DurationSec = &sec
	}
	return video
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseCount(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
