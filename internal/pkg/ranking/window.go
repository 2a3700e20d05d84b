package ranking

import (
	"context"
	"time"

	"Spotlight/internal/model"
)

// Range 时间窗口标记
type Range string

const (
	Range24h Range = "24h"
	Range48h Range = "48h"
	Range1d  Range = "1d"
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"
)

var rangeHours = map[Range]int{
	Range24h: 24,
	Range48h: 48,
	Range1d:  24,
	Range7d:  7 * 24,
	Range30d: 30 * 24,
}

// ParseRange 只接受 allowed 中列出的标记，空串返回 def
func ParseRange(s string, def Range, allowed ...Range) (Range, bool) {
	if s == "" {
		return def, true
	}
	for _, r := range allowed {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func (r Range) Hours() int {
	return rangeHours[r]
}

// Days 按整天计，不足一天按一天
func (r Range) Days() int {
	d := r.Hours() / 24
	if d < 1 {
		return 1
	}
	return d
}

// Bounded RangeAll 不限时间
func (r Range) Bounded() bool {
	return r.Hours() > 0
}

// Wider 只有 24h 会放宽到 48h
func (r Range) Wider() (Range, bool) {
	if r == Range24h {
		return Range48h, true
	}
	return "", false
}

// Window 实际使用的窗口
type Window struct {
	Range Range     `json:"range"`
	Since time.Time `json:"since"`
}

// RollingCutoff 滚动窗口：now - N 小时，与时区无关
func RollingCutoff(r Range, now time.Time) time.Time {
	if !r.Bounded() {
		return time.Time{}
	}
	return now.Add(-time.Duration(r.Hours()) * time.Hour)
}

// CivilMidnightCutoff 自然日窗口：loc 当地今天零点再往前推 days-1 天
func CivilMidnightCutoff(r Range, now time.Time, loc *time.Location) time.Time {
	if !r.Bounded() {
		return time.Time{}
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(-time.Duration(r.Days()-1) * 24 * time.Hour)
}

// InWindow publishedAt >= cutoff
func InWindow(v *model.Video, cutoff time.Time) bool {
	return !v.PublishedAt.Before(cutoff)
}

// FilterWindow 过滤出窗口内的视频，保持原顺序
func FilterWindow(videos []*model.Video, cutoff time.Time) []*model.Video {
	out := make([]*model.Video, 0, len(videos))
	for _, v := range videos {
		if InWindow(v, cutoff) {
			out = append(out, v)
		}
	}
	return out
}

// Fetcher 按起始时间取候选集
type Fetcher func(ctx context.Context, since time.Time) ([]*model.Video, error)

// AssembleRolling 在滚动窗口内组装结果；24h 为空时放宽一次到 48h，并返回实际窗口
func AssembleRolling(ctx context.Context, r Range, fetch Fetcher, req Request) (*Result, Window, error) {
	window := Window{Range: r, Since: RollingCutoff(r, req.Now)}
	videos, err := fetch(ctx, window.Since)
	if err != nil {
		return nil, window, err
	}
	res := Assemble(FilterWindow(videos, window.Since), req)
	if res.Total > 0 {
		return res, window, nil
	}

	wider, ok := r.Wider()
	if !ok {
		return res, window, nil
	}
	window = Window{Range: wider, Since: RollingCutoff(wider, req.Now)}
	videos, err = fetch(ctx, window.Since)
	if err != nil {
		return nil, window, err
	}
	return Assemble(FilterWindow(videos, window.Since), req), window, nil
}
