package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 除了基礎的 Get、Set 外，另提供 tag 記錄所需的集合與刪除指令
// 方便測試時替換 FakeCache 實作
// ttl <= 0 表示不設過期

type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

type FakeCache struct {
	GetFn      func(ctx context.Context, key string) *redis.StringCmd
	SetFn      func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SAddFn     func(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembersFn func(ctx context.Context, key string) *redis.StringSliceCmd
	DelFn      func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn    func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

func (f *FakeCache) SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd {
	if f.SAddFn != nil {
		return f.SAddFn(ctx, key, members...)
	}
	panic("unexpected SAdd")
}

func (f *FakeCache) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	if f.SMembersFn != nil {
		return f.SMembersFn(ctx, key)
	}
	panic("unexpected SMembers")
}

func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	panic("unexpected Del")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
