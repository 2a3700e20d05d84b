package dto

// PageDTO 分页参数，take 与 pageSize 等价，take 优先
type PageDTO struct {
	Page     int `form:"page" binding:"omitempty,min=1,max=1000"`
	Take     int `form:"take" binding:"omitempty,min=1,max=100"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Size 返回 take / pageSize 中非零的那个
func (p PageDTO) Size() int {
	if p.Take > 0 {
		return p.Take
	}
	return p.PageSize
}

// TrendingQueryDTO 热门列表
type TrendingQueryDTO struct {
	PageDTO
	Range  string `form:"range" binding:"omitempty,oneof=24h 48h 7d 30d"`
	Shorts string `form:"shorts" binding:"omitempty,oneof=all exclude only"`
	Sort   string `form:"sort" binding:"omitempty,oneof=hot new views likes"`
}

// SearchQueryDTO 搜索
type SearchQueryDTO struct {
	PageDTO
	Keyword string `form:"q" binding:"omitempty,max=100"`
	Range   string `form:"range" binding:"omitempty,oneof=1d 7d 30d all"`
	Shorts  string `form:"shorts" binding:"omitempty,oneof=all exclude only"`
	Sort    string `form:"sort" binding:"omitempty,oneof=new views likes trend support"`
}

// HeroQueryDTO 首页轮播
type HeroQueryDTO struct {
	Take int `form:"take" binding:"omitempty,min=1,max=20"`
}

// RankingQueryDTO 应援日榜 / 周榜 / 月榜
type RankingQueryDTO struct {
	PageDTO
	Range  string `form:"range" binding:"omitempty,oneof=1d 7d 30d"`
	Shorts string `form:"shorts" binding:"omitempty,oneof=all exclude only"`
}

// SupportDTO 应援请求，amount 为空时记 1 点
type SupportDTO struct {
	Amount *int `json:"amount" binding:"omitempty,min=1,max=10"`
}
