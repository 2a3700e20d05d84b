package ranking

import (
	"math"
	"time"

	"Spotlight/internal/model"
)

const (
	decayExponent = 1.3
	decayOffset   = 2.0

	hotLikeWeight   = 4
	trendLikeWeight = 20

	supportPointWeight = 50
	supportLikeWeight  = 3
	supportViewWeight  = 0.001
)

func ageHours(v *model.Video, now time.Time) float64 {
	return now.Sub(v.PublishedAt).Hours()
}

// HotScore 热门榜与首页轮播使用：(views + 4*likes) / (age + 2)^1.3，age 下限为 0
func HotScore(v *model.Video, now time.Time) float64 {
	age := math.Max(0, ageHours(v, now))
	engagement := float64(v.ViewCount() + hotLikeWeight*v.LikeCount())
	return engagement / math.Pow(age+decayOffset, decayExponent)
}

// TrendScore 搜索页 trend 排序使用：(views + 20*likes) / (age + 2)^1.3，age 下限为 1 小时
func TrendScore(v *model.Video, now time.Time) float64 {
	age := math.Max(1, ageHours(v, now))
	engagement := float64(v.ViewCount() + trendLikeWeight*v.LikeCount())
	return engagement / math.Pow(age+decayOffset, decayExponent)
}

// SupportWeightedScore points*50 + likes*3 + views*0.001
func SupportWeightedScore(v *model.Video, points int64) float64 {
	return float64(points)*supportPointWeight +
		float64(v.LikeCount())*supportLikeWeight +
		float64(v.ViewCount())*supportViewWeight
}

// Tally 单个视频在窗口内的应援点数
type Tally struct {
	VideoID string
	Points  int64
}

// TallySupport 按视频汇总应援点数，按首次出现顺序返回
func TallySupport(events []*model.SupportEvent) []Tally {
	index := make(map[string]int)
	tallies := make([]Tally, 0)
	for _, e := range events {
		i, ok := index[e.VideoID]
		if !ok {
			i = len(tallies)
			index[e.VideoID] = i
			tallies = append(tallies, Tally{VideoID: e.VideoID})
		}
		tallies[i].Points += e.Points()
	}
	return tallies
}
