package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"goforum/internal/model"
)

// FeedCache keeps assembled hot-feed pages in redis. Keys embed a
// version counter; invalidation bumps the counter instead of scanning
// for every cached page/limit combination.
type FeedCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

const versionKey = "feed:hot:ver"

func NewFeedCache(client *redisv9.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &FeedCache{client: client, ttl: ttl}
}

func (c *FeedCache) GetPage(ctx context.Context, page, limit int) ([]model.Post, bool, error) {
	key, err := c.pageKey(ctx, page, limit)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get feed page failed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached feed page failed: %w", err)
	}
	return posts, true, nil
}

func (c *FeedCache) SetPage(ctx context.Context, page, limit int, posts []model.Post) error {
	key, err := c.pageKey(ctx, page, limit)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal feed page failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set feed page failed: %w", err)
	}
	return nil
}

// Invalidate bumps the version counter; stale pages expire via TTL.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("redis bump feed version failed: %w", err)
	}
	return nil
}

func (c *FeedCache) pageKey(ctx context.Context, page, limit int) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redisv9.Nil {
		return "", fmt.Errorf("redis get feed version failed: %w", err)
	}
	return fmt.Sprintf("feed:hot:v%d:%d:%d", version, page, limit), nil
}
