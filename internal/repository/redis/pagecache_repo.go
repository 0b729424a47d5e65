package redis

import (
	"context"
	"errors"
	"fmt"

	"time"

	"github.com/redis/go-redis/v9"
)

const PageCacheKeyPrefix = "page:cache"

// PageCacheRepository 已渲染页面的响应缓存。写帖子不主动失效，
// 只等 TTL 到期或显式 Clear。
type PageCacheRepository struct{}

func NewPageCacheRepository() *PageCacheRepository {
	return &PageCacheRepository{}
}

func (r *PageCacheRepository) key(path string) string {
	return fmt.Sprintf("%s:%s", PageCacheKeyPrefix, path)
}

func (r *PageCacheRepository) Get(ctx context.Context, path string) ([]byte, bool, error) {
	b, err := Client.Get(ctx, r.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *PageCacheRepository) Set(ctx context.Context, path string, body []byte, ttl time.Duration) error {
	return Client.Set(ctx, r.key(path), body, ttl).Err()
}

func (r *PageCacheRepository) Clear(ctx context.Context, path string) error {
	return Client.Del(ctx, r.key(path)).Err()
}
