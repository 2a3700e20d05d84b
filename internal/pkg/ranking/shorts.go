package ranking

import (
	"strings"

	"Spotlight/internal/model"
)

const shortMaxDurationSec = 60

// ShortsMode 短视频过滤方式
type ShortsMode string

const (
	ShortsAll     ShortsMode = "all"
	ShortsExclude ShortsMode = "exclude"
	ShortsOnly    ShortsMode = "only"
)

// IsShort URL 含 /shorts/，或时长已知且不超过 60 秒。时长未知不算短视频
func IsShort(v *model.Video) bool {
	if v.URL != nil && strings.Contains(*v.URL, "/shorts/") {
		return true
	}
	return v.DurationSec != nil && *v.DurationSec <= shortMaxDurationSec
}

func FilterShorts(videos []*model.Video, mode ShortsMode) []*model.Video {
	if mode != ShortsExclude && mode != ShortsOnly {
		return videos
	}
	keepShort := mode == ShortsOnly
	out := make([]*model.Video, 0, len(videos))
	for _, v := range videos {
		if IsShort(v) == keepShort {
			out = append(out, v)
		}
	}
	return out
}
