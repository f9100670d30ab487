package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Producer 於快取缺漏時產生值
type Producer func(ctx context.Context) (string, error)

// Store 是帶 tag 分組的 read-through 快取
// 同一 key 的並發 miss 透過 singleflight 保證 producer 最多執行一次
// tag -> key 的對應以 Redis set 記錄，Invalidate 一次清除整組
type Store struct {
	cache Cache
	group singleflight.Group
}

func NewStore(c Cache) *Store {
	return &Store{cache: c}
}

const tagPrefix = "tag:"

// 站內共用的快取鍵與 tag
const (
	KeyCategoryOfTheMonth = "categoryOfTheMonth"
	KeySubMenuCategory    = "subMenuCategory"
	TagCategory           = "category"
)

// Get 回傳 key 的快取值；miss 時執行 produce、寫回並登記 tags
func (s *Store) Get(ctx context.Context, key string, tags []string, produce Producer) (string, error) {
	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("Store.Get %s: %w", key, err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// 進入 singleflight 後再讀一次，前一個航班可能已寫回
		if val, err := s.cache.Get(ctx, key).Result(); err == nil {
			return val, nil
		}
		val, err := produce(ctx)
		if err != nil {
			return "", err
		}
		if err := s.cache.Set(ctx, key, val, 0).Err(); err != nil {
			return "", fmt.Errorf("Store.Get set %s: %w", key, err)
		}
		for _, tag := range tags {
			if err := s.cache.SAdd(ctx, tagPrefix+tag, key).Err(); err != nil {
				return "", fmt.Errorf("Store.Get tag %s: %w", tag, err)
			}
		}
		return val, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate 清除登記在 tag 下的所有 key
func (s *Store) Invalidate(ctx context.Context, tag string) error {
	keys, err := s.cache.SMembers(ctx, tagPrefix+tag).Result()
	if err != nil {
		return fmt.Errorf("Store.Invalidate %s: %w", tag, err)
	}
	if len(keys) > 0 {
		if err := s.cache.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("Store.Invalidate %s: %w", tag, err)
		}
	}
	if err := s.cache.Del(ctx, tagPrefix+tag).Err(); err != nil {
		return fmt.Errorf("Store.Invalidate %s: %w", tag, err)
	}
	return nil
}
