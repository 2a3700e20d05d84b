package ranking

import (
	"sort"
	"time"

	"Spotlight/internal/model"
)

// Mode 排序方式
type Mode string

const (
	ModeHot      Mode = "hot"
	ModeTrend    Mode = "trend"
	ModeNew      Mode = "new"
	ModeViews    Mode = "views"
	ModeLikes    Mode = "likes"
	ModeSupport  Mode = "support"
	ModeWeighted Mode = "weighted"
)

// Scored 是否带有趋势分
func (m Mode) Scored() bool {
	return m == ModeHot || m == ModeTrend || m == ModeWeighted || m == ""
}

// Request 组装参数，候选集由调用方提前取好
type Request struct {
	Mode     Mode
	Shorts   ShortsMode
	Page     int
	PageSize int
	// Cap total 的上限，<= 0 表示不限
	Cap    int
	Now    time.Time
	Pinned []string
	// Events 窗口内的应援记录，support / weighted 模式使用
	Events []*model.SupportEvent
}

type Item struct {
	Video         *model.Video
	Score         float64
	SupportPoints int64
	Rank          int
}

type Result struct {
	Items    []*Item
	Page     int
	PageSize int
	Total    int
}

// Assemble 过滤、打分、排序、置顶合并、分页。纯函数，不做任何读写
func Assemble(candidates []*model.Video, req Request) *Result {
	videos := FilterShorts(candidates, req.Shorts)

	var items []*Item
	switch req.Mode {
	case ModeSupport:
		items = rankBySupport(videos, req.Events)
	case ModeWeighted:
		points := make(map[string]int64)
		for _, t := range TallySupport(req.Events) {
			points[t.VideoID] = t.Points
		}
		items = wrap(videos)
		for _, it := range items {
			it.SupportPoints = points[it.Video.ID]
			it.Score = SupportWeightedScore(it.Video, it.SupportPoints)
		}
		sortByScore(items)
	case ModeNew:
		items = wrap(videos)
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Video.PublishedAt.After(items[j].Video.PublishedAt)
		})
	case ModeViews:
		items = wrap(videos)
		sortByCount(items, (*model.Video).ViewCount)
	case ModeLikes:
		items = wrap(videos)
		sortByCount(items, (*model.Video).LikeCount)
	case ModeTrend:
		items = wrap(videos)
		for _, it := range items {
			it.Score = TrendScore(it.Video, req.Now)
		}
		sortByScore(items)
	default:
		items = wrap(videos)
		for _, it := range items {
			it.Score = HotScore(it.Video, req.Now)
		}
		sortByScore(items)
	}

	if len(req.Pinned) > 0 {
		items = pinFirst(items, req.Pinned)
	}
	for i, it := range items {
		it.Rank = i + 1
	}

	return paginate(items, req)
}

func wrap(videos []*model.Video) []*Item {
	items := make([]*Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, &Item{Video: v})
	}
	return items
}

func sortByScore(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// sortByCount 计数降序，相同时发布时间新的在前
func sortByCount(items []*Item, count func(*model.Video) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := count(items[i].Video), count(items[j].Video)
		if ci != cj {
			return ci > cj
		}
		return items[i].Video.PublishedAt.After(items[j].Video.PublishedAt)
	})
}

// rankBySupport 汇总应援点数降序，再映射回视频；找不到的 id 直接跳过
func rankBySupport(videos []*model.Video, events []*model.SupportEvent) []*Item {
	byID := make(map[string]*model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	tallies := TallySupport(events)
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Points > tallies[j].Points
	})

	items := make([]*Item, 0, len(tallies))
	for _, t := range tallies {
		v, ok := byID[t.VideoID]
		if !ok {
			continue
		}
		items = append(items, &Item{Video: v, SupportPoints: t.Points})
	}
	return items
}

// pinFirst 置顶 id 按给定顺序排在最前（去重，仅限候选集中存在的），其余按原排序补齐
func pinFirst(items []*Item, pinned []string) []*Item {
	byID := make(map[string]*Item, len(items))
	for _, it := range items {
		byID[it.Video.ID] = it
	}

	placed := make(map[string]struct{}, len(pinned))
	out := make([]*Item, 0, len(items))
	for _, id := range pinned {
		if _, dup := placed[id]; dup {
			continue
		}
		if it, ok := byID[id]; ok {
			placed[id] = struct{}{}
			out = append(out, it)
		}
	}
	for _, it := range items {
		if _, ok := placed[it.Video.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

func paginate(items []*Item, req Request) *Result {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	if req.Cap > 0 && total > req.Cap {
		total = req.Cap
	}

	res := &Result{Items: make([]*Item, 0), Page: page, PageSize: pageSize, Total: total}
	// 先按页数比较，超大的 page 相乘会溢出
	if page-1 >= (total+pageSize-1)/pageSize {
		return res
	}
	skip := (page - 1) * pageSize
	end := skip + pageSize
	if end > total {
		end = total
	}
	res.Items = items[skip:end]
	return res
}
