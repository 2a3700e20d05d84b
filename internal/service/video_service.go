package service

import (
	"Spotlight/internal/api/config"
	"Spotlight/internal/api/dto"
	"Spotlight/internal/model"
	"Spotlight/internal/pkg/ranking"
	"Spotlight/internal/repository"
	"context"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type VideoService interface {
	// Trending 滚动窗口热门列表，24h 无结果时自动放宽到 48h
	Trending(ctx context.Context, query *dto.TrendingQueryDTO) (*dto.VideoListDTO, error)
	// Search 关键字搜索，支持 trend / support 加权排序
	Search(ctx context.Context, query *dto.SearchQueryDTO) (*dto.VideoListDTO, error)
	// Hero 首页轮播，置顶视频优先
	Hero(ctx context.Context, query *dto.HeroQueryDTO) (*dto.VideoListDTO, error)
	// SupportRanking 按当地自然日统计的应援榜
	SupportRanking(ctx context.Context, query *dto.RankingQueryDTO) (*dto.VideoListDTO, error)
	// GetVideo 视频详情
	GetVideo(ctx context.Context, id string) (*dto.VideoDetailDTO, error)
}

type videoServiceImpl struct {
	videoRepo   repository.VideoRepo
	supportRepo repository.SupportEventRepo
	heroPinSvc  HeroPinService
	rankingCfg  config.RankingConfig
	heroCfg     config.HeroConfig
	loc         *time.Location
	now         func() time.Time
}

func NewVideoService(
	videoRepo repository.VideoRepo,
	supportRepo repository.SupportEventRepo,
	heroPinSvc HeroPinService,
	rankingCfg config.RankingConfig,
	heroCfg config.HeroConfig,
) VideoService {
	return &videoServiceImpl{
		videoRepo:   videoRepo,
		supportRepo: supportRepo,
		heroPinSvc:  heroPinSvc,
		rankingCfg:  rankingCfg,
		heroCfg:     heroCfg,
		loc:         LocalZone(rankingCfg),
		now:         time.Now,
	}
}

// LocalZone 日榜使用的固定时区
func LocalZone(cfg config.RankingConfig) *time.Location {
	return time.FixedZone("ranking", cfg.UTCOffsetHours*3600)
}

func (s *videoServiceImpl) Trending(ctx context.Context, query *dto.TrendingQueryDTO) (*dto.VideoListDTO, error) {
	r, ok := ranking.ParseRange(query.Range, ranking.Range24h,
		ranking.Range24h, ranking.Range48h, ranking.Range7d, ranking.Range30d)
	if !ok {
		return nil, ErrParamInvalid
	}

	mode, ok := parseMode(query.Sort, ranking.ModeHot,
		ranking.ModeHot, ranking.ModeNew, ranking.ModeViews, ranking.ModeLikes)
	if !ok {
		return nil, ErrParamInvalid
	}

	req := s.newRequest(mode, query.Shorts, query.Page, query.Size())
	res, window, err := ranking.AssembleRolling(ctx, r, s.fetchSince(""), req)
	if err != nil {
		return nil, upstream(err)
	}
	return s.toListDTO(res, req.Mode, &window), nil
}

func (s *videoServiceImpl) Search(ctx context.Context, query *dto.SearchQueryDTO) (*dto.VideoListDTO, error) {
	r, ok := ranking.ParseRange(query.Range, ranking.RangeAll,
		ranking.Range1d, ranking.Range7d, ranking.Range30d, ranking.RangeAll)
	if !ok {
		return nil, ErrParamInvalid
	}

	mode, ok := parseMode(query.Sort, ranking.ModeNew,
		ranking.ModeNew, ranking.ModeViews, ranking.ModeLikes, ranking.ModeTrend, ranking.ModeSupport)
	if !ok {
		return nil, ErrParamInvalid
	}
	// 搜索页的 support 排序是应援加权分，而不是纯点数
	if mode == ranking.ModeSupport {
		mode = ranking.ModeWeighted
	}
	req := s.newRequest(mode, query.Shorts, query.Page, query.Size())
	window := ranking.Window{Range: r, Since: ranking.RollingCutoff(r, req.Now)}

	videos, err := s.fetchSince(strings.TrimSpace(query.Keyword))(ctx, window.Since)
	if err != nil {
		return nil, upstream(err)
	}
	if mode == ranking.ModeWeighted {
		req.Events, err = s.supportRepo.ListSince(ctx, window.Since)
		if err != nil {
			return nil, upstream(err)
		}
	}

	res := ranking.Assemble(ranking.FilterWindow(videos, window.Since), req)
	return s.toListDTO(res, mode, &window), nil
}

func (s *videoServiceImpl) Hero(ctx context.Context, query *dto.HeroQueryDTO) (*dto.VideoListDTO, error) {
	take := query.Take
	if take <= 0 {
		take = s.heroCfg.Take
	}
	if s.heroCfg.MaxTake > 0 && take > s.heroCfg.MaxTake {
		take = s.heroCfg.MaxTake
	}

	r, ok := ranking.ParseRange(s.heroCfg.Range, ranking.Range7d,
		ranking.Range24h, ranking.Range48h, ranking.Range7d, ranking.Range30d)
	if !ok {
		r = ranking.Range7d
	}

	req := s.newRequest(ranking.ModeHot, string(ranking.ShortsAll), 1, take)
	window := ranking.Window{Range: r, Since: ranking.RollingCutoff(r, req.Now)}

	videos, err := s.fetchSince("")(ctx, window.Since)
	if err != nil {
		return nil, upstream(err)
	}
	candidates := ranking.FilterWindow(videos, window.Since)

	pinned := s.heroPinSvc.GetPinnedIDs(ctx)
	if len(pinned) > 0 {
		// 置顶视频不受时间窗口限制
		pinnedVideos, err := s.videoRepo.GetByIDs(ctx, pinned)
		if err != nil {
			return nil, upstream(err)
		}
		candidates = mergeCandidates(candidates, pinnedVideos)
		req.Pinned = pinned
	}

	res := ranking.Assemble(candidates, req)
	return s.toListDTO(res, req.Mode, &window), nil
}

func (s *videoServiceImpl) SupportRanking(ctx context.Context, query *dto.RankingQueryDTO) (*dto.VideoListDTO, error) {
	r, ok := ranking.ParseRange(query.Range, ranking.Range1d,
		ranking.Range1d, ranking.Range7d, ranking.Range30d)
	if !ok {
		return nil, ErrParamInvalid
	}

	req := s.newRequest(ranking.ModeSupport, query.Shorts, query.Page, query.Size())
	window := ranking.Window{Range: r, Since: ranking.CivilMidnightCutoff(r, req.Now, s.loc)}

	events, err := s.supportRepo.ListSince(ctx, window.Since)
	if err != nil {
		return nil, upstream(err)
	}
	req.Events = events

	tallies := ranking.TallySupport(events)
	ids := make([]string, 0, len(tallies))
	for _, t := range tallies {
		ids = append(ids, t.VideoID)
	}
	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, upstream(err)
	}

	res := ranking.Assemble(videos, req)
	return s.toListDTO(res, req.Mode, &window), nil
}

func (s *videoServiceImpl) GetVideo(ctx context.Context, id string) (*dto.VideoDetailDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingParameter
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	out := &dto.VideoDetailDTO{Description: video.Description}
	fillSummary(&out.VideoSummaryDTO, video)
	return out, nil
}

// fetchSince 候选集按发布时间倒序，最多取 CandidateCap 条
func (s *videoServiceImpl) fetchSince(keyword string) ranking.Fetcher {
	return func(ctx context.Context, since time.Time) ([]*model.Video, error) {
		return s.videoRepo.List(ctx, &repository.VideoQuery{
			Keyword: keyword,
			Since:   since,
			Limit:   s.rankingCfg.CandidateCap,
		})
	}
}

func (s *videoServiceImpl) newRequest(mode ranking.Mode, shorts string, page, size int) ranking.Request {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.rankingCfg.DefaultPageSize
	}
	if s.rankingCfg.MaxPageSize > 0 && size > s.rankingCfg.MaxPageSize {
		size = s.rankingCfg.MaxPageSize
	}
	return ranking.Request{
		Mode:     mode,
		Shorts:   ranking.ShortsMode(shorts),
		Page:     page,
		PageSize: size,
		Cap:      s.rankingCfg.CandidateCap,
		Now:      s.now(),
	}
}

// parseMode 空串返回 def，不在 allowed 中视为非法
func parseMode(sort string, def ranking.Mode, allowed ...ranking.Mode) (ranking.Mode, bool) {
	if sort == "" {
		return def, true
	}
	for _, m := range allowed {
		if string(m) == sort {
			return m, true
		}
	}
	return "", false
}

// mergeCandidates 追加 extra 中尚未出现的视频
func mergeCandidates(base, extra []*model.Video) []*model.Video {
	seen := make(map[string]struct{}, len(base))
	for _, v := range base {
		seen[v.ID] = struct{}{}
	}
	out := append(make([]*model.Video, 0, len(base)+len(extra)), base...)
	for _, v := range extra {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *videoServiceImpl) toListDTO(res *ranking.Result, mode ranking.Mode, window *ranking.Window) *dto.VideoListDTO {
	out := &dto.VideoListDTO{
		Items:    make([]*dto.VideoSummaryDTO, 0, len(res.Items)),
		Page:     res.Page,
		PageSize: res.PageSize,
		Total:    res.Total,
	}
	for _, it := range res.Items {
		item := &dto.VideoSummaryDTO{}
		fillSummary(item, it.Video)
		item.Rank = it.Rank
		if mode == ranking.ModeSupport || mode == ranking.ModeWeighted {
			points := it.SupportPoints
			item.SupportPoints = &points
		}
		if mode.Scored() {
			score := it.Score
			item.TrendingScore = &score
		}
		out.Items = append(out.Items, item)
	}
	if window != nil {
		out.Window = &dto.WindowDTO{Range: string(window.Range)}
		if !window.Since.IsZero() {
			since := window.Since
			out.Window.Since = &since
		}
	}
	return out
}

func fillSummary(dst *dto.VideoSummaryDTO, video *model.Video) {
	_ = copier.Copy(dst, video)
	dst.IsShort = ranking.IsShort(video)
}
