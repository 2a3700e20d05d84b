package service

import (
	"Spotlight/internal/api/config"
	"Spotlight/internal/api/dto"
	"Spotlight/internal/model"
	"Spotlight/internal/pkg/consts"
	"Spotlight/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Locker SETNX 风格的一次性锁，UnLock 只释放 value 相同的锁
type Locker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{}) error
}

type SupportService interface {
	// Support 为视频应援一次，clientKey 用于每日限流（通常是客户端 IP）
	Support(ctx context.Context, videoID, clientKey string, req *dto.SupportDTO) (*dto.SupportResultDTO, error)
}

type supportServiceImpl struct {
	videoRepo   repository.VideoRepo
	supportRepo repository.SupportEventRepo
	locker      Locker
	cfg         config.SupportConfig
	loc         *time.Location
	now         func() time.Time
}

func NewSupportService(
	videoRepo repository.VideoRepo,
	supportRepo repository.SupportEventRepo,
	locker Locker,
	cfg config.SupportConfig,
	rankingCfg config.RankingConfig,
) SupportService {
	return &supportServiceImpl{
		videoRepo:   videoRepo,
		supportRepo: supportRepo,
		locker:      locker,
		cfg:         cfg,
		loc:         LocalZone(rankingCfg),
		now:         time.Now,
	}
}

func (s *supportServiceImpl) Support(ctx context.Context, videoID, clientKey string, req *dto.SupportDTO) (*dto.SupportResultDTO, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrMissingParameter
	}
	if req != nil && req.Amount != nil {
		maxAmount := s.cfg.MaxAmount
		if maxAmount <= 0 {
			maxAmount = 10
		}
		if *req.Amount < 1 || *req.Amount > maxAmount {
			return nil, ErrParamInvalid
		}
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, upstream(err)
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	now := s.now()
	lockKey, lockValue := "", uuid.NewString()
	if s.cfg.DailyLimit && s.locker != nil {
		key := s.dailyKey(videoID, clientKey, now)
		ok, err := s.locker.TryLock(ctx, key, lockValue, s.untilMidnight(now), 0)
		if err != nil {
			log.WarnContext(ctx, "support daily lock failed, allow", "videoID", videoID, "err", err)
		} else if !ok {
			return nil, ErrSupportLimited
		} else {
			lockKey = key
		}
	}

	event := &model.SupportEvent{VideoID: videoID, CreatedAt: now}
	if req != nil {
		event.Amount = req.Amount
	}
	if err := s.supportRepo.Create(ctx, event); err != nil {
		// 没记上就把今天的名额还回去
		if lockKey != "" {
			if unlockErr := s.locker.UnLock(context.WithoutCancel(ctx), lockKey, lockValue); unlockErr != nil {
				log.WarnContext(ctx, "support daily unlock failed", "key", lockKey, "err", unlockErr)
			}
		}
		return nil, upstream(err)
	}

	return &dto.SupportResultDTO{
		VideoID:      videoID,
		Points:       event.Points(),
		SupportTotal: video.SupportTotal + event.Points(),
	}, nil
}

// dailyKey support:daily:lock:<当地日期>:<视频>:<客户端>
func (s *supportServiceImpl) dailyKey(videoID, clientKey string, now time.Time) string {
	day := now.In(s.loc).Format("20060102")
	return consts.SupportDailyLock + day + ":" + videoID + ":" + clientKey
}

// untilMidnight 锁在当地次日零点过期
func (s *supportServiceImpl) untilMidnight(now time.Time) time.Duration {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, s.loc)
	return next.Sub(local)
}
