package consts

const (
	HeroPinnedKey = "hero:pinned"
)

const (
	// SupportDailyLock 拼接 yyyymmdd:video_id:ip
	SupportDailyLock = "support:daily:lock:"
)

const (
	// VideoStatsJobLock 多实例部署时只让一个实例刷新
	VideoStatsJobLock = "job:video_stats:lock"
)
