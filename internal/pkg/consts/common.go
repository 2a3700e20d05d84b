package consts

const (
	// ListCacheControl 列表接口允许公共缓存 60 秒
	ListCacheControl = "public, max-age=60"
)
