package job

import (
	"Spotlight/internal/pkg/consts"
	"Spotlight/internal/pkg/logger"
	"Spotlight/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const videoStatsTimeout = 10 * time.Minute

// VideoStatsJob 定期刷新近期视频的播放、点赞与时长
type VideoStatsJob struct {
	ingestSvc service.IngestService
	locker    service.Locker
	days      int
}

func NewVideoStatsJob(ingestSvc service.IngestService, locker service.Locker, days int) *VideoStatsJob {
	return &VideoStatsJob{
		ingestSvc: ingestSvc,
		locker:    locker,
		days:      days,
	}
}

func (s *VideoStatsJob) Run() {
	traceID := "job-video-stats-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), videoStatsTimeout)
	defer cancel()

	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, consts.VideoStatsJobLock, traceID, videoStatsTimeout, 0)
		if err != nil {
			log.ErrorContext(ctx, "video stats job lock error", "err", err)
			return
		}
		if !ok {
			log.InfoContext(ctx, "video stats job running elsewhere, skip")
			return
		}
		defer func() {
			if err := s.locker.UnLock(context.WithoutCancel(ctx), consts.VideoStatsJobLock, traceID); err != nil {
				log.WarnContext(ctx, "video stats job unlock error", "err", err)
			}
		}()
	}

	start := time.Now()
	count, err := s.ingestSvc.RefreshRecent(ctx, s.days)
	if err != nil {
		log.ErrorContext(ctx, "video stats job failed", "refreshed", count, "err", err)
		return
	}
	log.InfoContext(ctx, "video stats job done", "refreshed", count, "days", s.days, "latency", time.Since(start))
}
