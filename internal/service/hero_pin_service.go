package service

import (
	"Spotlight/internal/pkg/consts"
	"context"
	log "log/slog"
	"strings"
)

// ListStore redis 列表的最小读写能力
type ListStore interface {
	GetList(ctx context.Context, key string) ([]string, error)
	ReplaceList(ctx context.Context, key string, value []string) error
}

type HeroPinService interface {
	// GetPinnedIDs 优先读 redis，未设置或出错时回退到配置
	GetPinnedIDs(ctx context.Context) []string
	SetPinnedIDs(ctx context.Context, ids []string) error
}

type heroPinServiceImpl struct {
	store    ListStore
	fallback []string
}

func NewHeroPinService(store ListStore, fallback []string) HeroPinService {
	return &heroPinServiceImpl{store: store, fallback: fallback}
}

func (s *heroPinServiceImpl) GetPinnedIDs(ctx context.Context) []string {
	if s.store == nil {
		return cleanIDs(s.fallback)
	}
	ids, err := s.store.GetList(ctx, consts.HeroPinnedKey)
	if err != nil {
		log.WarnContext(ctx, "read hero pins failed, use config", "err", err)
		return cleanIDs(s.fallback)
	}
	if len(ids) == 0 {
		return cleanIDs(s.fallback)
	}
	return cleanIDs(ids)
}

// SetPinnedIDs 覆盖置顶列表，ids 为空即清空
func (s *heroPinServiceImpl) SetPinnedIDs(ctx context.Context, ids []string) error {
	if s.store == nil {
		return UnExpectedError
	}
	if err := s.store.ReplaceList(ctx, consts.HeroPinnedKey, cleanIDs(ids)); err != nil {
		return upstream(err)
	}
	return nil
}

// cleanIDs 去空白、去重，保持顺序
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
