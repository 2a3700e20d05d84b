package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 对 redis.Client 的常用操作封装
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// TryLock SETNX，retryTimes 为 0 时只尝试一次，-1 时一直重试
func (s *Store) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i <= retryTimes || retryTimes == -1; i++ {
		success, err := s.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i == retryTimes {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

// UnLock 仅当 value 与持有者一致时才删除，避免误删别人的锁
func (s *Store) UnLock(ctx context.Context, key string, value interface{}) error {
	return s.rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
}

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// GetList 获取列表
func (s *Store) GetList(ctx context.Context, key string) ([]string, error) {
	value, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// ReplaceList 原子地用 value 覆盖整个列表，value 为空时等同删除
func (s *Store) ReplaceList(ctx context.Context, key string, value []string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(value) > 0 {
		pipe.RPush(ctx, key, value)
	}
	_, err := pipe.Exec(ctx)
	return err
}
