package data

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/iWorld-y/news_locator/internal/domain"
	"github.com/iWorld-y/news_locator/internal/repo"
)

const (
	highlightKey = "news_locator:highlights"
	// 过期后的内容保留一段时间，刷新失败时兜底
	staleRetention = 24 * time.Hour
)

type cachedHighlights struct {
	Value     *domain.Highlights `json:"value"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// NewHighlightCache 配置了 redis 时使用 redis，否则使用进程内缓存
func NewHighlightCache(data *Data, logger log.Logger) repo.HighlightCache {
	if data != nil && data.rdb != nil {
		return &redisHighlightCache{rdb: data.rdb, log: log.NewHelper(logger)}
	}
	return &memoryHighlightCache{now: time.Now}
}

type redisHighlightCache struct {
	rdb *redis.Client
	log *log.Helper
}

func (c *redisHighlightCache) Get(ctx context.Context) (*domain.Highlights, bool, error) {
	raw, err := c.rdb.Get(ctx, highlightKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cachedHighlights
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warnf("drop corrupted highlight cache: %v", err)
		return nil, false, nil
	}
	return entry.Value, time.Now().Before(entry.ExpiresAt), nil
}

func (c *redisHighlightCache) Set(ctx context.Context, h *domain.Highlights, ttl time.Duration) error {
	raw, err := json.Marshal(cachedHighlights{Value: h, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, highlightKey, raw, ttl+staleRetention).Err()
}

type memoryHighlightCache struct {
	mu    sync.RWMutex
	entry *cachedHighlights
	now   func() time.Time
}

func (c *memoryHighlightCache) Get(_ context.Context) (*domain.Highlights, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false, nil
	}
	return c.entry.Value, c.now().Before(c.entry.ExpiresAt), nil
}

func (c *memoryHighlightCache) Set(_ context.Context, h *domain.Highlights, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &cachedHighlights{Value: h, ExpiresAt: c.now().Add(ttl)}
	return nil
}
